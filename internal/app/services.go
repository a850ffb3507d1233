// Package app provides service initialization.
package app

import (
	"fmt"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
	"github.com/guttosm/print-quote-service/internal/service/cache"
)

const documentCacheShards = 16

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Quotes    service.QuoteService
	Documents cache.Cache[service.CachedDocument]
}

// InitializeServices builds the quote service over repo. A nil repo yields nil.
// Export uses headless Chrome; an invalid currency or locale is an error.
func InitializeServices(cfg config.Config, repo repository.QuoteRepositoryInterface) (*ServiceComponents, error) {
	return initializeServices(cfg, repo, service.NewChromePDFConverter(cfg.Export.ChromePath, cfg.Export.RenderTimeout))
}

func initializeServices(cfg config.Config, repo repository.QuoteRepositoryInterface, converter service.PDFConverter) (*ServiceComponents, error) {
	if repo == nil {
		return nil, nil
	}

	renderer, err := service.NewQuoteDocumentRenderer(service.DocumentConfig{
		Currency: cfg.Export.Currency,
		Locale:   cfg.Export.Locale,
	}, converter)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote renderer: %w", err)
	}

	var documents cache.Cache[service.CachedDocument]
	if cfg.Cache.Size > 0 {
		documents = cache.NewSharded[service.CachedDocument]("documents", cfg.Cache.Size, cfg.Cache.TTL, documentCacheShards)
	}

	estimator := service.NewQuoteEstimator(service.DefaultPriceTable())

	return &ServiceComponents{
		Quotes:    service.NewQuoteService(repo, estimator, renderer, documents),
		Documents: documents,
	}, nil
}
