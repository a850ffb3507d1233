package form_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/form"
	"github.com/guttosm/print-quote-service/internal/mocks"
)

func fillScenarioDraft(t *testing.T, c *form.Controller) {
	t.Helper()
	changes := []form.Change{
		form.Set(form.FieldClientName, "Acme"),
		form.Set(form.FieldProductType, "Flyer"),
		form.Set(form.FieldFinishedSize, "A4 (210 × 297mm)"),
		form.Set(form.FieldPageCount, "1"),
		form.Set(form.FieldSidedness, "single"),
		form.Set(form.FieldQuantity, "100"),
		form.Set(form.FieldDeliveryLocation, "Metro Melbourne"),
		form.Set(form.FieldInkType, "CMYK"),
		form.Check(form.FieldPMSColors, false),
	}
	for _, ch := range changes {
		require.NoError(t, c.Change(ch))
	}
}

func scenarioPayload() form.QuotePayload {
	return form.QuotePayload{
		ClientName:       "Acme",
		ProductType:      "Flyer",
		FinishedSize:     "A4 (210 × 297mm)",
		PageCount:        1,
		Sidedness:        "single",
		FinishingOptions: []string{},
		Quantity:         100,
		DeliveryLocation: "Metro Melbourne",
		InkType:          "CMYK",
		PMSColorCount:    1,
	}
}

func TestController_SubmitSuccess(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	api.On("CreateQuote", mock.Anything, scenarioPayload()).
		Return(&form.QuoteResult{QuoteID: "Q123"}, nil).Once()

	var phases []form.Phase
	c := form.NewController(api, form.WithObserver(func(s form.State) {
		phases = append(phases, s.Phase)
	}))
	fillScenarioDraft(t, c)

	result, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Q123", result.QuoteID)

	st := c.State()
	assert.Equal(t, "Quote generated successfully! Quote ID: Q123", st.Message)
	assert.Equal(t, form.DefaultDraft(), st.Draft)
	assert.Equal(t, form.PhaseIdle, st.Phase)
	require.NotNil(t, st.Result)
	assert.Equal(t, "Q123", st.Result.QuoteID)
	assert.True(t, st.CanSubmit())
	assert.True(t, st.CanExport())

	assert.Contains(t, phases, form.PhaseSubmitting)
	assert.Contains(t, phases, form.PhaseSucceeded)
	assert.Equal(t, form.PhaseIdle, phases[len(phases)-1])
	api.AssertExpectations(t)
}

func TestController_SubmitFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "backend rejects",
			err:     fmt.Errorf("status 500: %w", form.ErrRemoteRejected),
			message: "Error generating quote. Please try again.",
		},
		{
			name:    "backend unreachable",
			err:     fmt.Errorf("dial tcp: %w", form.ErrUnreachable),
			message: "Error connecting to server. Please try again.",
		},
		{
			name:    "timeout",
			err:     fmt.Errorf("%w: %w", form.ErrUnreachable, context.DeadlineExceeded),
			message: "Error connecting to server. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mocks.MockQuoteAPI)
			api.On("CreateQuote", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			c := form.NewController(api)
			fillScenarioDraft(t, c)
			before := c.State()

			result, err := c.Submit(context.Background())

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.err)
			st := c.State()
			assert.Equal(t, tt.message, st.Message)
			assert.Equal(t, before.Draft, st.Draft)
			assert.Nil(t, st.Result)
			assert.Equal(t, form.PhaseIdle, st.Phase)
		})
	}
}

func TestController_FailureKeepsPreviousResult(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "FIRST"}, nil).Once()
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(nil, form.ErrRemoteRejected).Once()

	c := form.NewController(api)
	fillScenarioDraft(t, c)
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	fillScenarioDraft(t, c)
	require.NoError(t, c.Change(form.Toggle("Spot UV")))
	before := c.State().Draft

	_, err = c.Submit(context.Background())
	require.Error(t, err)

	st := c.State()
	require.NotNil(t, st.Result)
	assert.Equal(t, "FIRST", st.Result.QuoteID)
	assert.Equal(t, before, st.Draft)
}

func TestController_EmptyQuoteIDIsRejection(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{}, nil).Once()

	c := form.NewController(api)
	fillScenarioDraft(t, c)

	_, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, form.ErrRemoteRejected)
	assert.Equal(t, "Error generating quote. Please try again.", c.State().Message)
	assert.Nil(t, c.State().Result)
}

func TestController_InvalidIntegerMakesNoRequest(t *testing.T) {
	api := new(mocks.MockQuoteAPI)

	c := form.NewController(api)
	fillScenarioDraft(t, c)
	require.NoError(t, c.Change(form.Set(form.FieldQuantity, "many")))
	before := c.State().Draft

	_, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, form.ErrInvalidDraft)
	assert.Equal(t, before, c.State().Draft)
	assert.Equal(t, form.PhaseIdle, c.State().Phase)
	assert.NotEmpty(t, c.State().Message)
	api.AssertNotCalled(t, "CreateQuote", mock.Anything, mock.Anything)
}

func TestController_SubmitWhileInFlightIsNoop(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	entered := make(chan struct{})
	release := make(chan struct{})
	api.On("CreateQuote", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&form.QuoteResult{QuoteID: "Q1"}, nil).Once()

	c := form.NewController(api)
	fillScenarioDraft(t, c)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.Submit(context.Background())
		assert.NoError(t, err)
	}()

	<-entered
	assert.Equal(t, form.PhaseSubmitting, c.State().Phase)
	assert.False(t, c.State().CanSubmit())

	for i := 0; i < 3; i++ {
		_, err := c.Submit(context.Background())
		assert.ErrorIs(t, err, form.ErrSubmitInFlight)
	}

	close(release)
	wg.Wait()

	api.AssertNumberOfCalls(t, "CreateQuote", 1)
	assert.Equal(t, form.PhaseIdle, c.State().Phase)
}

func TestController_ChangeDuringSubmitIsKeptOnFailure(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	entered := make(chan struct{})
	release := make(chan struct{})
	api.On("CreateQuote", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil, form.ErrUnreachable).Once()

	c := form.NewController(api)
	fillScenarioDraft(t, c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background())
	}()

	<-entered
	require.NoError(t, c.Change(form.Set(form.FieldClientName, "Acme Pty Ltd")))
	close(release)
	<-done

	assert.Equal(t, "Acme Pty Ltd", c.State().Draft.ClientName)
}

func TestController_ExportWithoutQuoteIsNoop(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	sink := new(mocks.MockSink)

	c := form.NewController(api, form.WithSink(sink))

	location, err := c.Export(context.Background())

	assert.ErrorIs(t, err, form.ErrNoQuote)
	assert.Empty(t, location)
	api.AssertNotCalled(t, "ExportQuote", mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_Export(t *testing.T) {
	doc := &form.Document{ContentType: "application/pdf", Data: []byte("%PDF-1.4")}

	t.Run("delivers the document named after the quote", func(t *testing.T) {
		api := new(mocks.MockQuoteAPI)
		api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "AB12CD34"}, nil).Once()
		api.On("ExportQuote", mock.Anything, "AB12CD34").Return(doc, nil).Twice()
		sink := new(mocks.MockSink)
		sink.On("Deliver", mock.Anything, "quote_AB12CD34.pdf", doc).Return("/tmp/quote_AB12CD34.pdf", nil).Twice()

		c := form.NewController(api, form.WithSink(sink))
		fillScenarioDraft(t, c)
		_, err := c.Submit(context.Background())
		require.NoError(t, err)
		before := c.State()

		for i := 0; i < 2; i++ {
			location, err := c.Export(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "/tmp/quote_AB12CD34.pdf", location)
		}

		after := c.State()
		assert.Equal(t, before.Draft, after.Draft)
		assert.Equal(t, before.Phase, after.Phase)
		assert.Equal(t, before.Message, after.Message)
		assert.Equal(t, "Quote exported to /tmp/quote_AB12CD34.pdf", after.ExportMessage)
		api.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("failure sets a generic export message", func(t *testing.T) {
		api := new(mocks.MockQuoteAPI)
		api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "Q9"}, nil).Once()
		api.On("ExportQuote", mock.Anything, "Q9").Return(nil, form.ErrRemoteRejected).Once()

		c := form.NewController(api)
		fillScenarioDraft(t, c)
		_, err := c.Submit(context.Background())
		require.NoError(t, err)

		_, err = c.Export(context.Background())

		assert.ErrorIs(t, err, form.ErrRemoteRejected)
		st := c.State()
		assert.Equal(t, "Error exporting quote. Please try again.", st.ExportMessage)
		assert.Equal(t, "Quote generated successfully! Quote ID: Q9", st.Message)
		assert.Equal(t, form.PhaseIdle, st.Phase)
	})

	t.Run("missing document is a rejection", func(t *testing.T) {
		api := new(mocks.MockQuoteAPI)
		api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "Q9"}, nil).Once()
		api.On("ExportQuote", mock.Anything, "Q9").Return(nil, nil).Once()
		sink := new(mocks.MockSink)

		c := form.NewController(api, form.WithSink(sink))
		fillScenarioDraft(t, c)
		_, err := c.Submit(context.Background())
		require.NoError(t, err)

		location, err := c.Export(context.Background())

		assert.ErrorIs(t, err, form.ErrRemoteRejected)
		assert.Empty(t, location)
		assert.Equal(t, "Error exporting quote. Please try again.", c.State().ExportMessage)
		sink.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sink failure is an export failure", func(t *testing.T) {
		api := new(mocks.MockQuoteAPI)
		api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "Q9"}, nil).Once()
		api.On("ExportQuote", mock.Anything, "Q9").Return(doc, nil).Once()
		sink := new(mocks.MockSink)
		sink.On("Deliver", mock.Anything, "quote_Q9.pdf", doc).Return("", errors.New("disk full")).Once()

		c := form.NewController(api, form.WithSink(sink))
		fillScenarioDraft(t, c)
		_, err := c.Submit(context.Background())
		require.NoError(t, err)

		_, err = c.Export(context.Background())

		assert.EqualError(t, err, "disk full")
		assert.Equal(t, "Error exporting quote. Please try again.", c.State().ExportMessage)
	})
}

func TestController_SubmitClearsPreviousMessage(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(nil, form.ErrUnreachable).Once()
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "Q2"}, nil).Once()

	var submitting []string
	c := form.NewController(api, form.WithObserver(func(s form.State) {
		if s.Phase == form.PhaseSubmitting {
			submitting = append(submitting, s.Message)
		}
	}))
	fillScenarioDraft(t, c)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, form.ErrUnreachable)
	require.Equal(t, "Error connecting to server. Please try again.", c.State().Message)

	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", ""}, submitting)
	assert.Equal(t, "Quote generated successfully! Quote ID: Q2", c.State().Message)
}

func TestController_ExportOverlapsSubmit(t *testing.T) {
	doc := &form.Document{Data: []byte("%PDF")}
	api := new(mocks.MockQuoteAPI)
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "OLD"}, nil).Once()

	entered := make(chan struct{})
	release := make(chan struct{})
	api.On("CreateQuote", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&form.QuoteResult{QuoteID: "NEW"}, nil).Once()
	api.On("ExportQuote", mock.Anything, "OLD").Return(doc, nil).Once()
	sink := new(mocks.MockSink)
	sink.On("Deliver", mock.Anything, "quote_OLD.pdf", doc).Return("quote_OLD.pdf", nil).Once()

	c := form.NewController(api, form.WithSink(sink))
	fillScenarioDraft(t, c)
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	fillScenarioDraft(t, c)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background())
	}()
	<-entered

	_, err = c.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.PhaseSubmitting, c.State().Phase)

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not finish")
	}
	assert.Equal(t, "NEW", c.State().Result.QuoteID)
}

func TestController_Locale(t *testing.T) {
	api := new(mocks.MockQuoteAPI)
	api.On("CreateQuote", mock.Anything, mock.Anything).Return(&form.QuoteResult{QuoteID: "Q1"}, nil).Once()

	c := form.NewController(api, form.WithLocale("pt"))
	fillScenarioDraft(t, c)
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Orçamento gerado com sucesso! ID do orçamento: Q1", c.State().Message)
}

func TestController_ChangeUnknownField(t *testing.T) {
	var notified int
	c := form.NewController(new(mocks.MockQuoteAPI), form.WithObserver(func(form.State) { notified++ }))

	err := c.Change(form.Set("bogus", "x"))

	assert.ErrorIs(t, err, form.ErrUnknownField)
	assert.Zero(t, notified)
	assert.Equal(t, form.DefaultDraft(), c.State().Draft)
}
