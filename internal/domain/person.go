package domain

import (
	"strings"
	"time"
)

// Gender is the participant gender enum accepted by the backend.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ValidGender reports whether g is one of the accepted enum values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Label returns the pt-BR display name for the gender value.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Masculino"
	case GenderFemale:
		return "Feminino"
	case GenderOther:
		return "Outro"
	}
	return string(g)
}

// Person is one participant in a registration batch. CPF is held formatted
// for display; it is normalized to digits on the wire.
type Person struct {
	FullName   string `json:"fullName"`
	CPF        string `json:"cpf"`
	BirthDate  string `json:"birthDate"`
	Gender     Gender `json:"gender"`
	DistrictID string `json:"districtId"`
	ChurchID   string `json:"churchId"`
	PhotoURL   string `json:"photoUrl,omitempty"`
}

// MissingRequired reports whether any mandatory field is still empty.
func (p *Person) MissingRequired() bool {
	return strings.TrimSpace(p.FullName) == "" ||
		p.BirthDate == "" ||
		p.Gender == "" ||
		p.DistrictID == "" ||
		p.ChurchID == ""
}

// Profile is the known registrant data returned by the availability check,
// used to pre-fill a participant.
type Profile struct {
	FullName   string `json:"fullName"`
	BirthDate  string `json:"birthDate"`
	Gender     Gender `json:"gender,omitempty"`
	DistrictID string `json:"districtId,omitempty"`
	ChurchID   string `json:"churchId,omitempty"`
	PhotoURL   string `json:"photoUrl,omitempty"`
}

// AgeYears computes full years elapsed since an ISO birth date (yyyy-mm-dd).
// The second return is false when the date cannot be parsed or lies in the
// future.
func AgeYears(birthDate string, now time.Time) (int, bool) {
	born, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0, false
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
