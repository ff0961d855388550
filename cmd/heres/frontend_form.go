package main

import (
	"context"
	"errors"

	"heres-tools/cmd/heres/registration"

	"github.com/charmbracelet/huh"
)

// formFrontend shows the registration as a huh form.
type formFrontend struct{}

func (formFrontend) interactive() bool { return true }

func (formFrontend) collect(v *registration.Values, errs registration.Errors) error {
	text := func(field registration.Field, title, placeholder string, value *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Description(fieldHint(errs, field)).
			Placeholder(placeholder).
			Value(value)
	}

	form := huh.NewForm(
		huh.NewGroup(
			text(registration.FieldFirstName, "Nombre", "", &v.FirstName),
			text(registration.FieldLastName1, "Primer apellido", "", &v.LastName1),
			text(registration.FieldLastName2, "Segundo apellido", "opcional", &v.LastName2),
			text(registration.FieldEmail, "Correo electrónico", "nombre@dominio.es", &v.Email),
			text(registration.FieldUsername, "Nombre de usuario", "será visible para otros miembros", &v.Username),
			text(registration.FieldBirthDate, "Fecha de nacimiento", "AAAA-MM-DD", &v.BirthDate),
		).Title("Datos personales"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sección").
				Description(fieldHint(errs, registration.FieldSection)).
				Options(huh.NewOptions(registration.Sections()...)...).
				Value(&v.Section),
			huh.NewSelect[string]().
				Title("Grupo").
				Description(fieldHint(errs, registration.FieldGroup)).
				OptionsFunc(func() []huh.Option[string] {
					return huh.NewOptions(registration.GroupsFor(v.Section)...)
				}, &v.Section).
				Value(&v.Group),
		).Title("Sección y grupo"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("¿Aceptas la política de privacidad?").
				Description(consentHint(errs)).
				Affirmative("Sí").
				Negative("No").
				Value(&v.Consent),
		).Title("Privacidad"),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errAborted
		}
		return err
	}
	return nil
}

func (formFrontend) submit(ctx context.Context, title string, fn func(context.Context) error) error {
	return runWithSpinner(ctx, title, fn)
}

func (formFrontend) retry() (bool, error) {
	again := true
	err := huh.NewConfirm().
		Title("¿Corregir los datos y volver a intentarlo?").
		Affirmative("Sí").
		Negative("No").
		Value(&again).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return again, err
}

// fieldHint renders the last validation message of field, if any.
func fieldHint(errs registration.Errors, field registration.Field) string {
	if msg := errs[field]; msg != "" {
		return styleErr.Render(msg)
	}
	return ""
}

func consentHint(errs registration.Errors) string {
	hint := "Consulta el texto completo con `" + appName + " privacy`."
	if msg := errs[registration.FieldConsent]; msg != "" {
		return styleErr.Render(msg) + "\n" + hint
	}
	return hint
}
