// Package catalog holds the fixed, ordered option lists offered by the quote form.
// The lists are compiled in and are not configurable at runtime.
package catalog

import (
	"slices"
	"strings"
)

// Sidedness values.
const (
	SideSingle = "single"
	SideDouble = "double"
)

// Ink types.
const (
	InkCMYK      = "CMYK"
	InkBlackOnly = "Black Only"
	InkCustom    = "Custom"
)

// Quote statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ProductTypes lists the product categories.
var ProductTypes = []string{
	"Booklet",
	"Brochure",
	"Flyer",
	"Signage",
	"Business Cards",
	"Posters",
	"Banners",
	"Stickers",
	"Catalogues",
	"Newsletters",
}

// FinishedSizes lists the size presets.
var FinishedSizes = []string{
	"A6 (105 × 148mm)",
	"A5 (148 × 210mm)",
	"A4 (210 × 297mm)",
	"A3 (297 × 420mm)",
	"DL (99 × 210mm)",
	"Custom Size",
}

// CoverStocks lists the cover stock options.
var CoverStocks = []string{
	"300gsm Gloss Art",
	"300gsm Matt Art",
	"350gsm Silk",
	"400gsm Uncoated",
	"250gsm Gloss Art",
	"250gsm Matt Art",
	"300gsm Uncoated",
	"350gsm Gloss Art",
}

// TextStocks lists the text stock options.
var TextStocks = []string{
	"80gsm Uncoated",
	"100gsm Uncoated",
	"115gsm Gloss Art",
	"128gsm Gloss Art",
	"150gsm Gloss Art",
	"170gsm Gloss Art",
	"200gsm Gloss Art",
	"250gsm Gloss Art",
}

// FinishingOptions lists the post-print treatments.
var FinishingOptions = []string{
	"Matt Laminate",
	"Gloss Laminate",
	"Spot UV",
	"Foiling (Gold)",
	"Foiling (Silver)",
	"Foiling (Other)",
	"Embossing",
	"Debossing",
	"Die Cutting",
	"Perfect Binding",
	"Saddle Stitching",
}

// DeliveryLocations lists the delivery regions.
var DeliveryLocations = []string{
	"Metro Melbourne",
	"Regional Victoria",
	"Interstate (NSW)",
	"Interstate (QLD)",
	"Interstate (SA)",
	"Interstate (WA)",
	"Interstate (TAS)",
	"Interstate (NT)",
	"Interstate (ACT)",
}

// InkTypes lists the ink options.
var InkTypes = []string{InkCMYK, InkBlackOnly, InkCustom}

// Sidedness lists the printing sides.
var Sidedness = []string{SideSingle, SideDouble}

// QuoteStatuses lists the lifecycle states of a stored quote.
var QuoteStatuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCompleted}

// MaxPMSColors is the upper bound of the PMS colour count.
const MaxPMSColors = 8

// SizeCode returns the leading token of a finished size label, e.g. "A4" for "A4 (210 × 297mm)".
func SizeCode(size string) string {
	size = strings.TrimSpace(size)
	if i := strings.IndexByte(size, ' '); i >= 0 {
		return size[:i]
	}
	return size
}

// ValidStatus reports whether status is a known quote status.
func ValidStatus(status string) bool {
	return slices.Contains(QuoteStatuses, status)
}
