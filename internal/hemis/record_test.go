package hemis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFullName(t *testing.T) {
	r := Record{
		StudentIDNumber: "12345678901",
		FirstName:       "Alisher",
		SecondName:      "Navoiy",
		ThirdName:       "Ahmadovich",
	}
	assert.Equal(t, "Navoiy Alisher Ahmadovich", Filter(r).FullName)

	r.ThirdName = ""
	assert.Equal(t, "Navoiy Alisher", Filter(r).FullName)

	assert.Equal(t, "", Filter(Record{}).FullName)
}

func TestFilterProjectsOrgFields(t *testing.T) {
	r := Record{
		StudentIDNumber: "98765432109",
		FirstName:       "Nodira",
		SecondName:      "Begim",
		Email:           "nodira@student.umft.uz",
		Department:      &Ref{ID: "002", Name: "Axborot xavfsizligi", Code: "002"},
		Faculty:         &Ref{Name: "Informatika fakulteti"},
		EducationForm:   &Ref{Name: "Kunduzgi"},
	}

	got := Filter(r)
	assert.Equal(t, "98765432109", got.StudentID)
	assert.Equal(t, "Axborot xavfsizligi", got.Department)
	assert.Equal(t, "002", got.DepartmentCode)
	assert.Equal(t, "Informatika fakulteti", got.Faculty)
	assert.Equal(t, "Kunduzgi", got.EducationForm)
	// absent nested objects yield empty values, never a panic
	assert.Equal(t, "", got.Group)
	assert.Equal(t, "", got.Specialty)
	assert.Equal(t, "", got.EducationYear)
}

// The filtered shape is the server boundary: whatever HEMIS adds to
// its records must never leak through serialization.
func TestFilterAllowListOnly(t *testing.T) {
	r := Record{
		StudentIDNumber: "12345678901",
		FirstName:       "Alisher",
		SecondName:      "Navoiy",
		Phone:           "+998901234567",
		Image:           "https://cdn.example/avatar.jpg",
		AvgGPA:          "3.8",
	}

	raw, err := json.Marshal(Filter(r))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	allowed := map[string]bool{
		"studentId": true, "fullName": true, "email": true,
		"department": true, "departmentCode": true, "group": true,
		"faculty": true, "specialty": true, "educationYear": true,
		"educationType": true, "educationForm": true,
	}
	for k := range fields {
		assert.True(t, allowed[k], "unexpected field %q in filtered output", k)
	}
}

func TestDisplayNameFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{"full_name wins", Record{FullName: "NAVOIY ALISHER", Name: "other", FirstName: "Alisher", SecondName: "Navoiy"}, "NAVOIY ALISHER"},
		{"name second", Record{Name: "NAVOIY ALISHER", FirstName: "Alisher", SecondName: "Navoiy"}, "NAVOIY ALISHER"},
		{"parts last", Record{FirstName: "Alisher", SecondName: "Navoiy"}, "Alisher Navoiy"},
		{"first only", Record{FirstName: "Alisher"}, "Alisher"},
		{"empty", Record{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.DisplayName())
		})
	}
}

func TestAvatarURLFallback(t *testing.T) {
	assert.Equal(t, "img", Record{Image: "img", Picture: "pic"}.AvatarURL())
	assert.Equal(t, "pic", Record{Picture: "pic"}.AvatarURL())
	assert.Equal(t, "", Record{}.AvatarURL())
}
