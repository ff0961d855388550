// Package account covers the account activation and password change flows.
// Both send a single password to the API and follow the same submission rules
// as member registration: validate locally, one request at a time, and keep
// the form editable after a failure.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"heres-tools/cmd/heres/api"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

const (
	MsgPasswordRequired = "La contraseña es obligatoria"
	MsgPasswordTooShort = "La contraseña debe tener al menos 8 caracteres"
	MsgConfirmMismatch  = "Las contraseñas no coinciden"
	MsgTargetRequired   = "Falta el identificador de la cuenta"
	GenericFailure      = "No se ha podido actualizar la contraseña. Inténtalo de nuevo más tarde."
)

// ErrBusy is returned when a request is already in flight.
var ErrBusy = errors.New("a request is already in progress")

// PasswordForm is the input of both flows. Target is the activation token or
// the user id, depending on the flow.
type PasswordForm struct {
	Target   string `validate:"required"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"eqfield=Password"`
}

// Errors maps a form field name to its message.
type Errors map[string]string

// InvalidError reports a form stopped by validation.
type InvalidError struct {
	Errors Errors
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("password form has %d invalid field(s)", len(e.Errors))
}

var validate = validator.New()

// Validate checks f and returns the errors per field, empty when valid.
func Validate(f PasswordForm) Errors {
	errs := Errors{}
	err := validate.Struct(f)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["Password"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Target.required":
		return MsgTargetRequired
	case "Password.required":
		return MsgPasswordRequired
	case "Password.min":
		return MsgPasswordTooShort
	case "Confirm.eqfield":
		return MsgConfirmMismatch
	}
	return fe.Error()
}

// SendFunc performs the API call of a flow.
type SendFunc func(ctx context.Context, target string, req api.PasswordRequest) (*api.MessageResponse, error)

// ActivateWith sends activation requests through c.
func ActivateWith(c *api.Client) SendFunc { return c.Activate }

// ChangePasswordWith sends password change requests through c.
func ChangePasswordWith(c *api.Client) SendFunc { return c.ChangePassword }

// Controller submits password forms one at a time.
type Controller struct {
	send   SendFunc
	logger *slog.Logger

	mu     sync.Mutex
	busy   bool
	banner string
}

func NewController(send SendFunc, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{send: send, logger: logger}
}

// Banner returns the message of the last failed request.
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// Submit validates f and sends it. See registration.Controller.Submit for
// the error contract.
func (c *Controller) Submit(ctx context.Context, f PasswordForm) (*api.MessageResponse, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if errs := Validate(f); len(errs) > 0 {
		c.mu.Unlock()
		return nil, &InvalidError{Errors: errs}
	}
	c.busy = true
	c.banner = ""
	c.mu.Unlock()

	resp, err := c.send(ctx, f.Target, api.PasswordRequest{Password: f.Password})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.banner = api.UserMessage(err, GenericFailure)
		c.logger.Warn("password request failed", slog.String("error", err.Error()))
		return nil, err
	}
	return resp, nil
}
