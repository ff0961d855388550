package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"heres-tools/cmd/heres/registration"

	"github.com/chzyer/readline"
	"github.com/ktr0731/go-fuzzyfinder"
)

// plainFrontend asks field by field on a line prompt and uses a fuzzy
// finder for sections and groups.
type plainFrontend struct {
	out io.Writer
}

func (plainFrontend) interactive() bool { return true }

func (p plainFrontend) collect(v *registration.Values, errs registration.Errors) error {
	fmt.Fprintln(p.out, styleHelp.Render("Intro conserva el valor entre corchetes, \"-\" lo borra."))

	texts := []struct {
		field registration.Field
		value *string
	}{
		{registration.FieldFirstName, &v.FirstName},
		{registration.FieldLastName1, &v.LastName1},
		{registration.FieldLastName2, &v.LastName2},
		{registration.FieldEmail, &v.Email},
		{registration.FieldUsername, &v.Username},
		{registration.FieldBirthDate, &v.BirthDate},
	}
	for _, t := range texts {
		p.printError(errs, t.field)
		line, err := promptLine(fieldLabel(t.field), *t.value)
		if err != nil {
			return err
		}
		*t.value = line
	}

	p.printError(errs, registration.FieldSection)
	section, err := choose(fieldLabel(registration.FieldSection), registration.Sections())
	if err != nil {
		return err
	}
	v.Section = section

	p.printError(errs, registration.FieldGroup)
	group, err := choose(fieldLabel(registration.FieldGroup)+" ("+section+")", registration.GroupsFor(section))
	if err != nil {
		return err
	}
	v.Group = group

	p.printError(errs, registration.FieldConsent)
	fmt.Fprintln(p.out, styleHelp.Render("Consulta la política con `"+appName+" privacy`."))
	consent, err := promptYesNo("¿Aceptas la política de privacidad?", v.Consent)
	if err != nil {
		return err
	}
	v.Consent = consent
	return nil
}

func (p plainFrontend) submit(ctx context.Context, title string, fn func(context.Context) error) error {
	fmt.Fprintln(p.out, title)
	return fn(ctx)
}

func (plainFrontend) retry() (bool, error) {
	return promptYesNo("¿Corregir los datos y volver a intentarlo?", true)
}

func (p plainFrontend) printError(errs registration.Errors, field registration.Field) {
	if msg := errs[field]; msg != "" {
		fmt.Fprintln(p.out, styleErr.Render(msg))
	}
}

// promptLine reads one line. An empty answer keeps current, "-" clears it.
func promptLine(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	line, err := readline.Line(prompt)
	if err != nil {
		return "", promptError(err)
	}
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return current, nil
	case "-":
		return "", nil
	}
	return line, nil
}

func promptYesNo(question string, def bool) (bool, error) {
	hint := "[s/N]"
	if def {
		hint = "[S/n]"
	}
	line, err := readline.Line(question + " " + hint + " ")
	if err != nil {
		return false, promptError(err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}

// choose lets the user pick one of options. No options yields "".
func choose(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string { return options[i] },
		fuzzyfinder.WithPromptString(label+": "),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errAborted
		}
		return "", err
	}
	return options[idx], nil
}

func promptError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return errAborted
	}
	return err
}

// readPassword reads a secret without echo.
func readPassword(prompt string) (string, error) {
	b, err := readline.Password(prompt)
	if err != nil {
		return "", promptError(err)
	}
	return string(b), nil
}
