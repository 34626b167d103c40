package webhook

import "edulead_backend/platform/graph"

// Form field names on the leadgen ad form.
const (
	fieldFullName    = "full_name"
	fieldEmail       = "email"
	fieldPhoneNumber = "phone_number"
	fieldDateOfBirth = "date_of_birth"
	fieldCourse      = "course_you_are_looking_for"
)

// Prospect holds the raw form answers extracted from a leadgen entry.
type Prospect struct {
	FullName    string
	Email       string
	PhoneNumber string
	DateOfBirth string
	CourseCode  string
}

// ExtractProspect maps leadgen field data onto a prospect. Each field
// contributes its first value; unknown fields are ignored.
func ExtractProspect(fields []graph.Field) Prospect {
	var p Prospect
	for _, field := range fields {
		if len(field.Values) == 0 {
			continue
		}
		value := field.Values[0]
		switch field.Name {
		case fieldFullName:
			p.FullName = value
		case fieldEmail:
			p.Email = value
		case fieldPhoneNumber:
			p.PhoneNumber = value
		case fieldDateOfBirth:
			p.DateOfBirth = value
		case fieldCourse:
			p.CourseCode = value
		}
	}
	return p
}
