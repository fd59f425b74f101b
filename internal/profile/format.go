package profile

import "strings"

// FormatName normalizes the ALL-CAPS names HEMIS returns to title
// case: the whole string is lowered, then the first letter of each
// whitespace-delimited word is raised. Deliberately not locale-aware
// title casing; apostrophed words ("O'g'li") get no special handling.
func FormatName(name string) string {
	if name == "" {
		return ""
	}

	words := strings.Split(strings.ToLower(name), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
