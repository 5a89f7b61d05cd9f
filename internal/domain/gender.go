package domain

// Gender is tri-state; the zero value means unspecified.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
)

// ParseGender accepts exactly "Male" or "Female"; anything else is unspecified.
func ParseGender(val string) Gender {
	switch Gender(val) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderUnspecified
	}
}

// Nullable converts to the storage form: Male=true, Female=false, unspecified=NULL.
func (g Gender) Nullable() *bool {
	switch g {
	case GenderMale:
		v := true
		return &v
	case GenderFemale:
		v := false
		return &v
	default:
		return nil
	}
}

// GenderFromNullable is the inverse of Nullable.
func GenderFromNullable(v *bool) Gender {
	if v == nil {
		return GenderUnspecified
	}
	if *v {
		return GenderMale
	}
	return GenderFemale
}

// Pointer returns nil for unspecified, for JSON null rendering.
func (g Gender) Pointer() *string {
	if g == GenderUnspecified {
		return nil
	}
	s := string(g)
	return &s
}
