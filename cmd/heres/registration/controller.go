package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"heres-tools/cmd/heres/api"
)

// State is a submission controller state.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// GenericFailure is shown when the server gave no usable error message.
const GenericFailure = "No se ha podido completar el registro. Inténtalo de nuevo más tarde."

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrCompleted is returned once the registration was accepted.
	ErrCompleted = errors.New("registration already completed")
)

// InvalidError reports a submit attempt stopped by the validator.
type InvalidError struct {
	Errors Errors
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("registration form has %d invalid field(s)", len(e.Errors))
}

// Sender delivers a registration to the API. *api.Client implements it.
type Sender interface {
	RegisterMember(ctx context.Context, req api.RegisterMemberRequest) (*api.RegisterMemberResponse, error)
}

// Controller runs submissions of one Form. At most one submission is in
// flight at a time; the state guard enforces it.
type Controller struct {
	form        *Form
	sender      Sender
	youthCenter string
	timeout     time.Duration
	now         func() time.Time
	logger      *slog.Logger

	mu     sync.Mutex
	state  State
	banner string
	result *api.RegisterMemberResponse
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTimeout bounds each submission. Zero disables the bound.
func WithTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) { c.timeout = d }
}

// WithClock replaces time.Now, used for the age check and the consent date.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger used for failed submissions.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

// NewController binds form to sender. youthCenter is sent as is with every
// registration.
func NewController(form *Form, sender Sender, youthCenter string, opts ...ControllerOption) *Controller {
	c := &Controller{
		form:        form,
		sender:      sender,
		youthCenter: youthCenter,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Form returns the controlled form.
func (c *Controller) Form() *Form {
	return c.form
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.State() == StateSubmitting
}

// Banner returns the top-level error message of the last failed submission.
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// Result returns the server response once the registration succeeded.
func (c *Controller) Result() *api.RegisterMemberResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// CanSubmit reports whether the submit action is enabled.
func (c *Controller) CanSubmit() bool {
	return c.State() == StateIdle && c.form.Complete()
}

// Submit validates the form and, when valid, sends it. It returns nil on
// success, *InvalidError when validation fails, ErrBusy or ErrCompleted when
// the controller is not idle, and the API error otherwise. Field values are
// never modified by a failed submission.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSuccess:
		c.mu.Unlock()
		return ErrCompleted
	case StateIdle:
	default:
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateValidating

	now := c.now()
	values := c.form.Values()
	if errs := Validate(values, now); len(errs) > 0 {
		c.form.setErrors(errs)
		c.state = StateIdle
		c.mu.Unlock()
		return &InvalidError{Errors: errs}
	}
	c.form.setErrors(nil)
	c.state = StateSubmitting
	c.banner = ""
	c.mu.Unlock()

	req := c.payload(values, now)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.sender.RegisterMember(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.banner = api.UserMessage(err, GenericFailure)
		c.state = StateIdle
		c.logger.Warn("registration failed", slog.String("username", values.Username), slog.String("error", err.Error()))
		return err
	}
	c.result = resp
	c.state = StateSuccess
	c.form.lock()
	c.logger.Info("registration accepted", slog.String("username", values.Username))
	return nil
}

func (c *Controller) payload(v Values, now time.Time) api.RegisterMemberRequest {
	return api.RegisterMemberRequest{
		FirstName:     v.FirstName,
		LastName1:     v.LastName1,
		LastName2:     v.LastName2,
		Email:         v.Email,
		Username:      v.Username,
		BirthDate:     v.BirthDate,
		Seccion:       v.Section,
		Grupo:         v.Group,
		ConsentGiven:  true,
		ConsentDate:   now.UTC().Format(ConsentDateLayout),
		CentroJuvenil: c.youthCenter,
	}
}

// ConsentDateLayout matches the ISO-8601 strings produced by browsers.
const ConsentDateLayout = "2006-01-02T15:04:05.000Z07:00"
