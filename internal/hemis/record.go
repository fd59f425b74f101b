package hemis

import "strings"

// Ref is a nested reference object as HEMIS returns it. Most
// organizational fields arrive as {id, name, code} with only name
// reliably present.
type Ref struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// Record is the raw student record returned by HEMIS. It is untrusted
// and must never cross the server boundary unfiltered; Filter is the
// only sanctioned projection.
type Record struct {
	StudentIDNumber string `json:"student_id_number"`
	FirstName       string `json:"first_name"`
	SecondName      string `json:"second_name"`
	ThirdName       string `json:"third_name"`
	FullName        string `json:"full_name,omitempty"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Image           string `json:"image,omitempty"`
	Picture         string `json:"picture,omitempty"`
	AvgGPA          string `json:"avg_gpa,omitempty"`

	Group         *Ref `json:"group,omitempty"`
	Department    *Ref `json:"department,omitempty"`
	Faculty       *Ref `json:"faculty,omitempty"`
	Specialty     *Ref `json:"specialty,omitempty"`
	Level         *Ref `json:"level,omitempty"`
	EducationYear *Ref `json:"education_year,omitempty"`
	EducationType *Ref `json:"education_type,omitempty"`
	EducationForm *Ref `json:"education_form,omitempty"`
}

// FilteredStudent is the allow-listed projection of a Record. It is
// regenerated on every fetch and never partially updated.
type FilteredStudent struct {
	StudentID      string `json:"studentId"`
	FullName       string `json:"fullName"`
	Email          string `json:"email,omitempty"`
	Department     string `json:"department,omitempty"`
	DepartmentCode string `json:"departmentCode,omitempty"`
	Group          string `json:"group,omitempty"`
	Faculty        string `json:"faculty,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	EducationYear  string `json:"educationYear,omitempty"`
	EducationType  string `json:"educationType,omitempty"`
	EducationForm  string `json:"educationForm,omitempty"`
}

// Filter projects a raw record down to the client-safe shape. Total:
// any combination of missing fields yields empty strings, never an
// error.
func Filter(r Record) FilteredStudent {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.SecondName, r.FirstName, r.ThirdName} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return FilteredStudent{
		StudentID:      r.StudentIDNumber,
		FullName:       strings.Join(parts, " "),
		Email:          r.Email,
		Department:     refName(r.Department),
		DepartmentCode: refCode(r.Department),
		Group:          refName(r.Group),
		Faculty:        refName(r.Faculty),
		Specialty:      refName(r.Specialty),
		EducationYear:  refName(r.EducationYear),
		EducationType:  refName(r.EducationType),
		EducationForm:  refName(r.EducationForm),
	}
}

// DisplayName returns the best available name for a record. HEMIS is
// inconsistent about which name field is populated, so the fallback
// order is fixed here and nowhere else: full_name, then name, then
// "first second".
func (r Record) DisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	if r.Name != "" {
		return r.Name
	}
	return strings.TrimSpace(r.FirstName + " " + r.SecondName)
}

// AvatarURL returns the avatar with the same fixed fallback order the
// name uses: image, then picture.
func (r Record) AvatarURL() string {
	if r.Image != "" {
		return r.Image
	}
	return r.Picture
}

func refName(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func refCode(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.Code
}
