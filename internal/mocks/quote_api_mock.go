// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/print-quote-service/internal/form"
)

type MockQuoteAPI struct {
	mock.Mock
}

func (m *MockQuoteAPI) CreateQuote(ctx context.Context, payload form.QuotePayload) (*form.QuoteResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*form.QuoteResult), args.Error(1)
}

func (m *MockQuoteAPI) ExportQuote(ctx context.Context, quoteID string) (*form.Document, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*form.Document), args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Deliver(ctx context.Context, name string, doc *form.Document) (string, error) {
	args := m.Called(ctx, name, doc)
	return args.String(0), args.Error(1)
}
