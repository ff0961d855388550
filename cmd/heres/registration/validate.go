package registration

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Age limits for the birth date, both inclusive.
const (
	MinAge = 5
	MaxAge = 120
)

// MinUsernameLength is the shortest accepted username.
const MinUsernameLength = 4

// BirthDateLayout is the accepted birth date format.
const BirthDateLayout = "2006-01-02"

// Messages shown next to invalid fields.
const (
	MsgFirstNameRequired = "El nombre es obligatorio"
	MsgLastName1Required = "El primer apellido es obligatorio"
	MsgEmailInvalid      = "El correo electrónico no es válido"
	MsgUsernameRequired  = "El nombre de usuario es obligatorio"
	MsgUsernameTooShort  = "El nombre de usuario debe tener al menos 4 caracteres"
	MsgBirthDateRequired = "La fecha de nacimiento es obligatoria"
	MsgBirthDateInvalid  = "La fecha de nacimiento no es válida"
	MsgSectionRequired   = "La sección es obligatoria"
	MsgGroupRequired     = "El grupo es obligatorio"
	MsgConsentRequired   = "Debes aceptar la política de privacidad"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a field to its validation message.
type Errors map[Field]string

// Fields returns the fields with an error, in display order.
func (e Errors) Fields() []Field {
	order := map[Field]int{}
	for i, f := range Fields() {
		order[f] = i
	}
	out := make([]Field, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Validate checks every rule against v and reports all failures together.
// now is the reference time for the age check.
func Validate(v Values, now time.Time) Errors {
	errs := Errors{}

	if strings.TrimSpace(v.FirstName) == "" {
		errs[FieldFirstName] = MsgFirstNameRequired
	}
	if strings.TrimSpace(v.LastName1) == "" {
		errs[FieldLastName1] = MsgLastName1Required
	}
	if v.Email != "" && !emailPattern.MatchString(v.Email) {
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case strings.TrimSpace(v.Username) == "":
		errs[FieldUsername] = MsgUsernameRequired
	case len([]rune(v.Username)) < MinUsernameLength:
		errs[FieldUsername] = MsgUsernameTooShort
	}

	if v.BirthDate == "" {
		errs[FieldBirthDate] = MsgBirthDateRequired
	} else if !validBirthDate(v.BirthDate, now) {
		errs[FieldBirthDate] = MsgBirthDateInvalid
	}

	if v.Section == "" {
		errs[FieldSection] = MsgSectionRequired
	}
	// Group membership is guaranteed by the section rule; only presence is checked.
	if v.Group == "" {
		errs[FieldGroup] = MsgGroupRequired
	}
	if !v.Consent {
		errs[FieldConsent] = MsgConsentRequired
	}
	return errs
}

// Age returns the year difference between birth and now, ignoring month and day.
func Age(birth, now time.Time) int {
	return now.Year() - birth.Year()
}

func validBirthDate(s string, now time.Time) bool {
	birth, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return false
	}
	age := Age(birth, now)
	return age >= MinAge && age <= MaxAge
}
