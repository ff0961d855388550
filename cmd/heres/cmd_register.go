package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"heres-tools/cmd/heres/api"
	"heres-tools/cmd/heres/registration"

	"github.com/spf13/cobra"
)

func newRegisterCommand() *cobra.Command {
	var (
		values         registration.Values
		plain          bool
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new member (QR self-registration form)",
		Long: "Fill in the member self-registration form and send it to the HERES API.\n\n" +
			"By default an interactive form is shown. --plain asks field by field on\n" +
			"a line prompt, --non-interactive takes every value from flags. Flags also\n" +
			"pre-fill the interactive forms.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain && nonInteractive {
				return fmt.Errorf("--plain and --non-interactive are mutually exclusive")
			}
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			ctrl := registration.NewController(registration.NewForm(), s.client, s.cfg.YouthCenter,
				registration.WithTimeout(s.cfg.Timeout),
				registration.WithLogger(s.logger),
			)

			var fe frontend
			switch {
			case nonInteractive:
				fe = flagFrontend{}
			case plain:
				fe = plainFrontend{out: cmd.ErrOrStderr()}
			default:
				fe = formFrontend{}
			}
			return runRegistration(cmd.Context(), ctrl, fe, values, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&values.FirstName, "first-name", "", "first name")
	f.StringVar(&values.LastName1, "last-name", "", "first last name")
	f.StringVar(&values.LastName2, "second-last-name", "", "second last name (optional)")
	f.StringVar(&values.Email, "email", "", "e-mail address (optional)")
	f.StringVarP(&values.Username, "username", "u", "", "public username, at least 4 characters")
	f.StringVar(&values.BirthDate, "birth-date", "", "birth date as YYYY-MM-DD")
	f.StringVar(&values.Section, "section", "", "section: CJ or Chiqui")
	f.StringVar(&values.Group, "group", "", "group within the section")
	f.BoolVar(&values.Consent, "accept-privacy", false, "accept the privacy policy (see `"+appName+" privacy`)")
	f.BoolVar(&plain, "plain", false, "use line prompts instead of the interactive form")
	f.BoolVar(&nonInteractive, "non-interactive", false, "take all values from flags, never prompt")

	_ = cmd.RegisterFlagCompletionFunc("section", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return registration.Sections(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("group", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		section, _ := cmd.Flags().GetString("section")
		return registration.GroupsFor(section), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// errAborted is returned when the user leaves a prompt.
var errAborted = errors.New("aborted")

// frontend is one way of talking to the user during a registration.
type frontend interface {
	// collect lets the user edit v. errs holds the messages of the last attempt.
	collect(v *registration.Values, errs registration.Errors) error
	// submit runs fn while showing that a request is in flight.
	submit(ctx context.Context, title string, fn func(context.Context) error) error
	// retry asks whether to edit and resend after a failed request.
	retry() (bool, error)
	// interactive reports whether the user can correct invalid input.
	interactive() bool
}

// runRegistration loops collect → submit until the server accepts the
// registration, the user gives up, or a non-interactive attempt fails.
func runRegistration(ctx context.Context, ctrl *registration.Controller, fe frontend, values registration.Values, out io.Writer) error {
	form := ctrl.Form()
	if !fe.interactive() {
		if err := form.Load(values); err != nil {
			return err
		}
	}
	for {
		if fe.interactive() {
			if err := fe.collect(&values, form.Errors()); err != nil {
				return err
			}
			if err := form.Load(values); err != nil {
				return err
			}
			values = form.Values()
		}

		err := fe.submit(ctx, "Enviando registro…", ctrl.Submit)

		var invalid *registration.InvalidError
		switch {
		case err == nil:
			printRegistered(out, form.Values(), ctrl.Result())
			return nil
		case errors.As(err, &invalid):
			printFieldErrors(out, invalid.Errors)
			if !fe.interactive() {
				return &exitError{code: exitInvalid, err: err}
			}
		case errors.Is(err, context.Canceled):
			return err
		default:
			printBanner(out, ctrl.Banner())
			again, rerr := fe.retry()
			if rerr != nil {
				return rerr
			}
			if !again {
				return errors.New(ctrl.Banner())
			}
		}
	}
}

func printRegistered(w io.Writer, v registration.Values, resp *api.RegisterMemberResponse) {
	username := v.Username
	if resp != nil && resp.Username != "" {
		username = resp.Username
	}
	fmt.Fprintln(w, styleOK.Render("✔ Registro completado. Usuario: "+username))
	if resp != nil && resp.Message != "" {
		fmt.Fprintln(w, styleHelp.Render(resp.Message))
	}
}

func printFieldErrors(w io.Writer, errs registration.Errors) {
	fmt.Fprintln(w, styleErr.Render("Revisa los siguientes campos:"))
	for _, f := range errs.Fields() {
		fmt.Fprintf(w, "  %s %s\n", styleField.Render(fieldLabel(f)+":"), errs[f])
	}
}

func printBanner(w io.Writer, msg string) {
	fmt.Fprintln(w, styleBanner.Render(msg))
}

func fieldLabel(f registration.Field) string {
	switch f {
	case registration.FieldFirstName:
		return "Nombre"
	case registration.FieldLastName1:
		return "Primer apellido"
	case registration.FieldLastName2:
		return "Segundo apellido"
	case registration.FieldEmail:
		return "Correo electrónico"
	case registration.FieldUsername:
		return "Nombre de usuario"
	case registration.FieldBirthDate:
		return "Fecha de nacimiento"
	case registration.FieldSection:
		return "Sección"
	case registration.FieldGroup:
		return "Grupo"
	case registration.FieldConsent:
		return "Privacidad"
	}
	return string(f)
}

// flagFrontend never prompts: values come from flags only.
type flagFrontend struct{}

func (flagFrontend) collect(*registration.Values, registration.Errors) error { return nil }
func (flagFrontend) retry() (bool, error)                                    { return false, nil }
func (flagFrontend) interactive() bool                                       { return false }

func (flagFrontend) submit(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}
