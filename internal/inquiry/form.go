package inquiry

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/galleryhaus/gallery-backend/internal/cart"
	"github.com/galleryhaus/gallery-backend/pkg/inquiryclient"
)

// FormState is the inquiry form's lifecycle position.
type FormState string

const (
	// StateCollapsed is the initial state: only the "Continue" control shows.
	StateCollapsed FormState = "collapsed"
	// StateExpanded shows the editable form fields.
	StateExpanded FormState = "expanded"
	// StateSubmitting locks the inputs while the one request is in flight.
	StateSubmitting FormState = "submitting"
	// StateSubmitted is terminal for the attempt; the result is available.
	StateSubmitted FormState = "submitted"
)

var (
	// ErrInvalidTransition rejects user actions the current state does not allow.
	ErrInvalidTransition = errors.New("inquiry form: invalid transition")
	// ErrSubmitInFlight rejects a second submit while one is running.
	ErrSubmitInFlight = errors.New("inquiry form: submission already in flight")
	// ErrMissingFields rejects a submit with an empty email or name.
	ErrMissingFields = errors.New("inquiry form: email and name are required")
)

type submitter interface {
	Submit(ctx context.Context, payload inquiryclient.Payload) inquiryclient.RelayResult
}

// Form models the inquiry form lifecycle explicitly so illegal transitions
// (double-submit above all) are unrepresentable. All transitions are
// user-triggered; there are no timeouts.
type Form struct {
	mu     sync.Mutex
	state  FormState
	client submitter
	result *inquiryclient.RelayResult

	Email   string
	Name    string
	Message string
}

// NewForm starts collapsed.
func NewForm(client submitter) *Form {
	return &Form{state: StateCollapsed, client: client}
}

// State reports the current lifecycle position.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the last submission outcome, nil before any submit finished.
func (f *Form) Result() *inquiryclient.RelayResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Expand reveals the form; only valid from the collapsed state.
func (f *Form) Expand() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateCollapsed {
		return ErrInvalidTransition
	}
	f.state = StateExpanded
	return nil
}

// SetFields records the shopper's input; allowed while the form is editable.
func (f *Form) SetFields(email, name, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateExpanded {
		return ErrInvalidTransition
	}
	f.Email = email
	f.Name = name
	f.Message = message
	return nil
}

// Submit validates locally (mirroring the server check, not replacing it),
// locks the form, and invokes the submission client exactly once. The form
// ends in Submitted regardless of outcome; Edit reopens it after a failure.
func (f *Form) Submit(ctx context.Context, items []cart.SummaryItem) (inquiryclient.RelayResult, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return inquiryclient.RelayResult{}, ErrSubmitInFlight
	case StateExpanded:
	default:
		f.mu.Unlock()
		return inquiryclient.RelayResult{}, ErrInvalidTransition
	}
	if strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Name) == "" {
		f.mu.Unlock()
		return inquiryclient.RelayResult{}, ErrMissingFields
	}

	payload := inquiryclient.Payload{
		Email:       f.Email,
		Name:        f.Name,
		Message:     f.Message,
		CartSummary: items,
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	result := f.client.Submit(ctx, payload)

	f.mu.Lock()
	f.state = StateSubmitted
	f.result = &result
	f.mu.Unlock()

	return result, nil
}

// Edit reopens the form for another attempt after a failed submission.
func (f *Form) Edit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitted || f.result == nil || f.result.Success {
		return ErrInvalidTransition
	}
	f.state = StateExpanded
	f.result = nil
	return nil
}
