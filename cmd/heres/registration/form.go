// Package registration holds the member self-registration form: its state,
// the section to group derivation, validation and the submission controller.
package registration

import (
	"errors"
	"strings"
	"sync"
)

// Field names a form field. Values match the JSON keys used by the web client.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName1 Field = "lastName1"
	FieldLastName2 Field = "lastName2"
	FieldEmail     Field = "email"
	FieldUsername  Field = "username"
	FieldBirthDate Field = "birthDate"
	FieldSection   Field = "section"
	FieldGroup     Field = "group"
	FieldConsent   Field = "consent"
)

// Fields lists every field in display order.
func Fields() []Field {
	return []Field{
		FieldFirstName, FieldLastName1, FieldLastName2, FieldEmail, FieldUsername,
		FieldBirthDate, FieldSection, FieldGroup, FieldConsent,
	}
}

// ErrFormLocked is returned by setters once the registration was accepted.
var ErrFormLocked = errors.New("registration already completed")

// Values is a snapshot of the form fields.
type Values struct {
	FirstName string
	LastName1 string
	LastName2 string
	Email     string
	Username  string
	BirthDate string // YYYY-MM-DD
	Section   string
	Group     string
	Consent   bool
}

// Form is the state store of one registration session. Setters are the only
// way to mutate it; each one clears the stale error of the field it edits.
type Form struct {
	mu     sync.Mutex
	values Values
	errs   Errors
	locked bool
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{errs: Errors{}}
}

// Values returns a copy of the current field values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current per-field errors.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.clone()
}

// Error returns the error message for field, or "".
func (f *Form) Error(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[field]
}

// Groups returns the groups selectable under the current section.
func (f *Form) Groups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return GroupsFor(f.values.Section)
}

// Complete reports whether every required field is filled in and consent is
// given. It does not run the validator.
func (f *Form) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values
	if !v.Consent {
		return false
	}
	for _, s := range []string{v.FirstName, v.LastName1, v.Username, v.BirthDate, v.Section, v.Group} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

// Locked reports whether the form was accepted by the server.
func (f *Form) Locked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locked
}

// Set assigns a text field. Section and consent have their own setters.
func (f *Form) Set(field Field, value string) error {
	switch field {
	case FieldSection:
		return f.SetSection(value)
	case FieldConsent:
		return f.SetConsent(value == "true")
	}
	return f.update(field, func(v *Values) error {
		switch field {
		case FieldFirstName:
			v.FirstName = value
		case FieldLastName1:
			v.LastName1 = value
		case FieldLastName2:
			v.LastName2 = value
		case FieldEmail:
			v.Email = value
		case FieldUsername:
			v.Username = value
		case FieldBirthDate:
			v.BirthDate = value
		case FieldGroup:
			v.Group = normalizeGroup(v.Section, value)
		default:
			return errors.New("unknown field " + string(field))
		}
		return nil
	})
}

// SetSection changes the section and drops the group if it no longer belongs
// to the new section.
func (f *Form) SetSection(section string) error {
	return f.update(FieldSection, func(v *Values) error {
		v.Section = section
		v.Group = normalizeGroup(section, v.Group)
		return nil
	})
}

// SetConsent records whether the privacy terms were accepted.
func (f *Form) SetConsent(given bool) error {
	return f.update(FieldConsent, func(v *Values) error {
		v.Consent = given
		return nil
	})
}

// Load assigns every field of v through the setters, in display order, so
// the section rule applies before the group is set.
func (f *Form) Load(v Values) error {
	steps := []struct {
		field Field
		value string
	}{
		{FieldFirstName, v.FirstName},
		{FieldLastName1, v.LastName1},
		{FieldLastName2, v.LastName2},
		{FieldEmail, v.Email},
		{FieldUsername, v.Username},
		{FieldBirthDate, v.BirthDate},
		{FieldSection, v.Section},
		{FieldGroup, v.Group},
	}
	for _, s := range steps {
		if err := f.setIfChanged(s.field, s.value); err != nil {
			return err
		}
	}
	if f.Values().Consent != v.Consent {
		return f.SetConsent(v.Consent)
	}
	return nil
}

// setIfChanged only touches fields whose value differs, so errors on
// untouched fields survive a reload.
func (f *Form) setIfChanged(field Field, value string) error {
	if current := f.Values(); fieldValue(current, field) == value {
		return nil
	}
	return f.Set(field, value)
}

func (f *Form) update(field Field, fn func(v *Values) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked {
		return ErrFormLocked
	}
	if err := fn(&f.values); err != nil {
		return err
	}
	delete(f.errs, field)
	return nil
}

func (f *Form) setErrors(errs Errors) {
	f.mu.Lock()
	f.errs = errs.clone()
	f.mu.Unlock()
}

func (f *Form) lock() {
	f.mu.Lock()
	f.locked = true
	f.mu.Unlock()
}

func fieldValue(v Values, field Field) string {
	switch field {
	case FieldFirstName:
		return v.FirstName
	case FieldLastName1:
		return v.LastName1
	case FieldLastName2:
		return v.LastName2
	case FieldEmail:
		return v.Email
	case FieldUsername:
		return v.Username
	case FieldBirthDate:
		return v.BirthDate
	case FieldSection:
		return v.Section
	case FieldGroup:
		return v.Group
	case FieldConsent:
		if v.Consent {
			return "true"
		}
		return "false"
	}
	return ""
}
