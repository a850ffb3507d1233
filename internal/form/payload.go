package form

import (
	"fmt"
	"strconv"
	"strings"
)

// QuotePayload is the body of a quote creation request.
type QuotePayload struct {
	ClientName          string   `json:"client_name"`
	ProductType         string   `json:"product_type"`
	FinishedSize        string   `json:"finished_size"`
	PageCount           int      `json:"page_count"`
	Sidedness           string   `json:"sidedness"`
	CoverStock          string   `json:"cover_stock"`
	TextStock           string   `json:"text_stock"`
	FinishingOptions    []string `json:"finishing_options"`
	Quantity            int      `json:"quantity"`
	DeliveryLocation    string   `json:"delivery_location"`
	SpecialRequirements string   `json:"special_requirements"`
	InkType             string   `json:"ink_type"`
	PMSColors           bool     `json:"pms_colors"`
	PMSColorCount       int      `json:"pms_color_count"`
}

// PayloadFieldName maps every draft field to its wire name. It is total and 1:1;
// the payload tests hold it in step with the QuotePayload json tags.
var PayloadFieldName = map[Field]string{
	FieldClientName:          "client_name",
	FieldProductType:         "product_type",
	FieldFinishedSize:        "finished_size",
	FieldPageCount:           "page_count",
	FieldSidedness:           "sidedness",
	FieldCoverStock:          "cover_stock",
	FieldTextStock:           "text_stock",
	FieldFinishingOptions:    "finishing_options",
	FieldQuantity:            "quantity",
	FieldDeliveryLocation:    "delivery_location",
	FieldSpecialRequirements: "special_requirements",
	FieldInkType:             "ink_type",
	FieldPMSColors:           "pms_colors",
	FieldPMSColorCount:       "pms_color_count",
}

// ToPayload converts a draft snapshot. pageCount, quantity and pmsColorCount are
// parsed to integers; every other field is copied as is.
func ToPayload(d Draft) (QuotePayload, error) {
	pageCount, err := parseCount(FieldPageCount, d.PageCount)
	if err != nil {
		return QuotePayload{}, err
	}
	quantity, err := parseCount(FieldQuantity, d.Quantity)
	if err != nil {
		return QuotePayload{}, err
	}
	pmsColorCount, err := parseCount(FieldPMSColorCount, d.PMSColorCount)
	if err != nil {
		return QuotePayload{}, err
	}

	return QuotePayload{
		ClientName:          d.ClientName,
		ProductType:         d.ProductType,
		FinishedSize:        d.FinishedSize,
		PageCount:           pageCount,
		Sidedness:           d.Sidedness,
		CoverStock:          d.CoverStock,
		TextStock:           d.TextStock,
		FinishingOptions:    append(make([]string, 0, len(d.FinishingOptions)), d.FinishingOptions...),
		Quantity:            quantity,
		DeliveryLocation:    d.DeliveryLocation,
		SpecialRequirements: d.SpecialRequirements,
		InkType:             d.InkType,
		PMSColors:           d.PMSColors,
		PMSColorCount:       pmsColorCount,
	}, nil
}

func parseCount(f Field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidDraft, PayloadFieldName[f], raw)
	}
	return n, nil
}
