package form

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/i18n"
)

// Phase is the submission phase.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is a snapshot of the controller.
type State struct {
	Draft         Draft
	Phase         Phase
	Result        *QuoteResult
	Message       string
	ExportMessage string
}

// CanSubmit reports whether the submit trigger is enabled.
func (s State) CanSubmit() bool {
	return s.Phase != PhaseSubmitting
}

// CanExport reports whether there is a quote to export.
func (s State) CanExport() bool {
	return s.Result != nil
}

// Observer receives every state transition, outside the controller lock.
type Observer func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithSink sets where exported documents go. Defaults to the working directory.
func WithSink(sink Sink) Option {
	return func(c *Controller) { c.sink = sink }
}

// WithLocale sets the language of status messages.
func WithLocale(locale string) Option {
	return func(c *Controller) { c.locale = locale }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// Controller owns the form state and drives submit and export.
// It is safe for concurrent use; the lock is never held across a network call.
type Controller struct {
	api        QuoteAPI
	sink       Sink
	translator *i18n.Translator
	locale     string
	observers  []Observer

	mu            sync.Mutex
	draft         Draft
	phase         Phase
	result        *QuoteResult
	message       string
	exportMessage string
}

// NewController creates a controller with a default draft.
func NewController(api QuoteAPI, opts ...Option) *Controller {
	c := &Controller{
		api:        api,
		sink:       NewFileSink("."),
		translator: i18n.GetTranslator(),
		locale:     i18n.DefaultLocale,
		draft:      DefaultDraft(),
		phase:      PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Change applies a single field edit.
func (c *Controller) Change(ch Change) error {
	c.mu.Lock()
	next, err := Reduce(c.draft, ch)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.draft = next
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st)
	return nil
}

// Submit sends the current draft to the backend. While a submit is in flight any
// further call returns ErrSubmitInFlight without dispatching a request. On success
// the draft is reset; on failure draft and previous result are kept. Either way the
// controller is back in PhaseIdle when Submit returns.
func (c *Controller) Submit(ctx context.Context) (*QuoteResult, error) {
	c.mu.Lock()
	if c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	payload, err := ToPayload(c.draft)
	if err != nil {
		c.settleLocked(PhaseFailed, c.translator.Translate(i18n.FormKeyInvalidDraft, c.locale))
		return nil, err
	}

	c.phase = PhaseSubmitting
	c.message = ""
	submitting := c.stateLocked()
	c.mu.Unlock()
	c.notify(submitting)

	result, err := c.api.CreateQuote(ctx, payload)
	if err == nil && (result == nil || result.QuoteID == "") {
		err = ErrRemoteRejected
	}

	c.mu.Lock()
	if err != nil {
		key := i18n.FormKeyUnreachable
		if errors.Is(err, ErrRemoteRejected) {
			key = i18n.FormKeyRejected
		}
		log.Debug().Err(err).Str("client_name", payload.ClientName).Msg("quote submit failed")
		c.settleLocked(PhaseFailed, c.translator.Translate(key, c.locale))
		return nil, err
	}

	c.result = result
	c.draft = DefaultDraft()
	log.Debug().Str("quote_id", result.QuoteID).Msg("quote submitted")
	c.settleLocked(PhaseSucceeded, c.translator.Translatef(i18n.FormKeySubmitted, c.locale, result.QuoteID))
	return result, nil
}

// settleLocked publishes the outcome phase and then idle. It releases c.mu.
func (c *Controller) settleLocked(outcome Phase, message string) {
	c.phase = outcome
	c.message = message
	settled := c.stateLocked()
	c.phase = PhaseIdle
	idle := c.stateLocked()
	c.mu.Unlock()

	c.notify(settled)
	c.notify(idle)
}

// Export retrieves the document for the last created quote and hands it to the sink.
// With no quote it returns ErrNoQuote and makes no request. It never touches the
// draft or the submission phase.
func (c *Controller) Export(ctx context.Context) (string, error) {
	c.mu.Lock()
	result := c.result
	c.mu.Unlock()

	if result == nil {
		return "", ErrNoQuote
	}

	location, err := c.export(ctx, result.QuoteID)

	c.mu.Lock()
	if err != nil {
		log.Debug().Err(err).Str("quote_id", result.QuoteID).Msg("quote export failed")
		c.exportMessage = c.translator.Translate(i18n.FormKeyExportFailed, c.locale)
	} else {
		c.exportMessage = c.translator.Translatef(i18n.FormKeyExported, c.locale, location)
	}
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st)
	return location, err
}

func (c *Controller) export(ctx context.Context, quoteID string) (string, error) {
	doc, err := c.api.ExportQuote(ctx, quoteID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", ErrRemoteRejected
	}
	return c.sink.Deliver(ctx, ExportFileName(quoteID), doc)
}

func (c *Controller) stateLocked() State {
	return State{
		Draft:         c.draft.Clone(),
		Phase:         c.phase,
		Result:        c.result,
		Message:       c.message,
		ExportMessage: c.exportMessage,
	}
}

func (c *Controller) notify(st State) {
	for _, o := range c.observers {
		o(st)
	}
}
