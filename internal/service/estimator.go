package service

import (
	"math"
	"strings"

	"github.com/guttosm/print-quote-service/internal/catalog"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// PriceTable holds every rate the estimator uses. All amounts are in the quote currency.
type PriceTable struct {
	ProductBase        map[string]float64
	DefaultProductBase float64
	// SizeMultiplier is keyed by the size code, e.g. "A4".
	SizeMultiplier        map[string]float64
	DefaultSizeMultiplier float64
	PageFactor            float64
	DoubleSidedFactor     float64
	Finishing             map[string]float64
	Ink                   map[string]float64
	DefaultInk            float64
	PMSPerColour          float64
	Delivery              map[string]float64
	DefaultDelivery       float64
	// Discounts must be ordered by descending MinQuantity.
	Discounts []QuantityDiscount
}

// QuantityDiscount applies Rate to the print cost of orders of at least MinQuantity.
type QuantityDiscount struct {
	MinQuantity int
	Rate        float64
}

// DefaultPriceTable returns the shop's current rates.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		ProductBase: map[string]float64{
			"Booklet":        2.50,
			"Brochure":       1.80,
			"Flyer":          0.50,
			"Signage":        15.00,
			"Business Cards": 0.25,
			"Posters":        8.00,
			"Banners":        25.00,
			"Stickers":       1.20,
			"Catalogues":     3.50,
			"Newsletters":    1.60,
		},
		DefaultProductBase: 2.00,
		SizeMultiplier: map[string]float64{
			"A6":     0.8,
			"A5":     1.0,
			"A4":     1.2,
			"A3":     1.8,
			"DL":     0.9,
			"Custom": 1.5,
		},
		DefaultSizeMultiplier: 1.0,
		PageFactor:            0.3,
		DoubleSidedFactor:     1.6,
		Finishing: map[string]float64{
			"Matt Laminate":    0.40,
			"Gloss Laminate":   0.40,
			"Spot UV":          0.80,
			"Foiling (Gold)":   1.20,
			"Foiling (Silver)": 1.00,
			"Foiling (Other)":  1.30,
			"Embossing":        1.50,
			"Debossing":        1.50,
			"Die Cutting":      2.00,
			"Perfect Binding":  1.80,
			"Saddle Stitching": 0.60,
		},
		Ink: map[string]float64{
			catalog.InkCMYK:      0.15,
			catalog.InkBlackOnly: 0.05,
			catalog.InkCustom:    0.25,
		},
		DefaultInk:   0.10,
		PMSPerColour: 0.35,
		Delivery: map[string]float64{
			"Metro Melbourne":   15.00,
			"Regional Victoria": 25.00,
			"Interstate (NSW)":  35.00,
			"Interstate (QLD)":  40.00,
			"Interstate (SA)":   35.00,
			"Interstate (WA)":   50.00,
			"Interstate (TAS)":  45.00,
			"Interstate (NT)":   55.00,
			"Interstate (ACT)":  30.00,
		},
		DefaultDelivery: 30.00,
		Discounts: []QuantityDiscount{
			{MinQuantity: 1000, Rate: 0.15},
			{MinQuantity: 500, Rate: 0.10},
			{MinQuantity: 100, Rate: 0.05},
		},
	}
}

// Estimator prices a print specification.
type Estimator interface {
	Estimate(spec model.PrintSpec) model.CostBreakdown
}

// QuoteEstimator is the table-driven Estimator.
type QuoteEstimator struct {
	prices PriceTable
}

// NewQuoteEstimator creates an estimator over prices.
func NewQuoteEstimator(prices PriceTable) *QuoteEstimator {
	return &QuoteEstimator{prices: prices}
}

// Estimate computes the per-unit cost, applies the quantity discount to the print
// cost and adds delivery. Every amount in the breakdown is rounded to cents.
func (e *QuoteEstimator) Estimate(spec model.PrintSpec) model.CostBreakdown {
	p := e.prices

	base := lookup(p.ProductBase, spec.ProductType, p.DefaultProductBase)
	size := lookup(p.SizeMultiplier, catalog.SizeCode(spec.FinishedSize), p.DefaultSizeMultiplier)
	pages := math.Max(1, float64(spec.PageCount)*p.PageFactor)
	sides := 1.0
	if spec.Sidedness == catalog.SideDouble {
		sides = p.DoubleSidedFactor
	}

	unit := base*size*pages*sides +
		stockSurcharge(spec.CoverStock, spec.TextStock) +
		e.finishingCost(spec.FinishingOptions) +
		lookup(p.Ink, spec.InkType, p.DefaultInk)
	if spec.PMSColors {
		unit += float64(spec.PMSColorCount) * p.PMSPerColour
	}

	printCost := unit * float64(spec.Quantity)
	rate := e.discountRate(spec.Quantity)
	discount := printCost * rate
	delivery := lookup(p.Delivery, spec.DeliveryLocation, p.DefaultDelivery)

	return model.CostBreakdown{
		UnitCost:      roundCents(unit),
		PrintCost:     roundCents(printCost),
		DiscountRate:  rate,
		Discount:      roundCents(discount),
		DeliveryCost:  delivery,
		EstimatedCost: roundCents(printCost - discount + delivery),
	}
}

func (e *QuoteEstimator) finishingCost(options []string) float64 {
	var total float64
	for _, o := range options {
		total += e.prices.Finishing[o]
	}
	return total
}

func (e *QuoteEstimator) discountRate(quantity int) float64 {
	for _, d := range e.prices.Discounts {
		if quantity >= d.MinQuantity {
			return d.Rate
		}
	}
	return 0
}

// stockSurcharge matches on the gsm weight in the stock label.
func stockSurcharge(cover, text string) float64 {
	var s float64
	switch {
	case strings.Contains(cover, "300gsm"), strings.Contains(cover, "350gsm"):
		s += 0.30
	case strings.Contains(cover, "400gsm"):
		s += 0.50
	}
	switch {
	case strings.Contains(text, "150gsm"), strings.Contains(text, "170gsm"):
		s += 0.20
	case strings.Contains(text, "200gsm"), strings.Contains(text, "250gsm"):
		s += 0.35
	}
	return s
}

func lookup(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
