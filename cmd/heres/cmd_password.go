package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"heres-tools/cmd/heres/account"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// passwordFlags are shared by activate and password.
type passwordFlags struct {
	plain bool
	stdin bool
}

func (f *passwordFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.plain, "plain", false, "use line prompts instead of the interactive form")
	cmd.Flags().BoolVar(&f.stdin, "password-stdin", false, "read the new password from stdin, without confirmation prompt")
}

func newActivateCommand() *cobra.Command {
	var flags passwordFlags
	cmd := &cobra.Command{
		Use:   "activate <token>",
		Short: "Activate an account and choose its password",
		Long: "Activate the account behind the token received by e-mail and set its\n" +
			"first password.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			ctrl := account.NewController(account.ActivateWith(s.client), s.logger)
			return runPasswordFlow(cmd, ctrl, args[0], flags, "Cuenta activada. Ya puedes iniciar sesión.")
		},
	}
	flags.register(cmd)
	return cmd
}

func newPasswordCommand() *cobra.Command {
	var flags passwordFlags
	cmd := &cobra.Command{
		Use:   "password <user-id>",
		Short: "Change the password of a user",
		Long: "Change the password of a user. The request is authenticated with the\n" +
			"token from the config file or $" + envPrefix + "_TOKEN.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			if s.cfg.Token == "" {
				s.logger.Warn("no token configured, the request will be anonymous")
			}
			ctrl := account.NewController(account.ChangePasswordWith(s.client), s.logger)
			return runPasswordFlow(cmd, ctrl, args[0], flags, "Contraseña actualizada.")
		},
	}
	flags.register(cmd)
	return cmd
}

func runPasswordFlow(cmd *cobra.Command, ctrl *account.Controller, target string, flags passwordFlags, success string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if flags.stdin {
		pw, err := readSecretLine(cmd.InOrStdin())
		if err != nil {
			return err
		}
		form := account.PasswordForm{Target: target, Password: pw, Confirm: pw}
		if err := submitPassword(ctx, ctrl, form, out, success); err != nil {
			var invalid *account.InvalidError
			if errors.As(err, &invalid) {
				return &exitError{code: exitInvalid, err: err}
			}
			return err
		}
		return nil
	}

	for {
		form := account.PasswordForm{Target: target}
		var err error
		if flags.plain {
			err = askPasswordPlain(&form)
		} else {
			err = askPasswordForm(&form)
		}
		if err != nil {
			return err
		}

		err = submitPassword(ctx, ctrl, form, out, success)
		var invalid *account.InvalidError
		switch {
		case err == nil:
			return nil
		case errors.Is(err, context.Canceled):
			return err
		case errors.As(err, &invalid):
			// ask again
		default:
			var again bool
			if flags.plain {
				again, err = plainFrontend{}.retry()
			} else {
				again, err = formFrontend{}.retry()
			}
			if err != nil {
				return err
			}
			if !again {
				return errors.New(ctrl.Banner())
			}
		}
	}
}

// submitPassword sends form and prints the outcome.
func submitPassword(ctx context.Context, ctrl *account.Controller, form account.PasswordForm, out io.Writer, success string) error {
	resp, err := ctrl.Submit(ctx, form)
	var invalid *account.InvalidError
	switch {
	case err == nil:
		fmt.Fprintln(out, styleOK.Render("✔ "+success))
		if resp != nil && resp.Message != "" {
			fmt.Fprintln(out, styleHelp.Render(resp.Message))
		}
	case errors.As(err, &invalid):
		for _, field := range []string{"Target", "Password", "Confirm"} {
			if msg, ok := invalid.Errors[field]; ok {
				fmt.Fprintln(out, styleErr.Render(msg))
			}
		}
	default:
		printBanner(out, ctrl.Banner())
	}
	return err
}

func askPasswordForm(form *account.PasswordForm) error {
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Nueva contraseña").
			Description(fmt.Sprintf("Al menos %d caracteres", account.MinPasswordLength)).
			EchoMode(huh.EchoModePassword).
			Value(&form.Password),
		huh.NewInput().
			Title("Repite la contraseña").
			EchoMode(huh.EchoModePassword).
			Value(&form.Confirm),
	)).WithTheme(huh.ThemeCharm()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errAborted
	}
	return err
}

func askPasswordPlain(form *account.PasswordForm) error {
	pw, err := readPassword("Nueva contraseña: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Repite la contraseña: ")
	if err != nil {
		return err
	}
	form.Password, form.Confirm = pw, confirm
	return nil
}

// readSecretLine reads the first line of r without its line terminator.
func readSecretLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
