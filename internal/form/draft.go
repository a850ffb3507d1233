// Package form implements the quote request form: the draft state, the field-change
// reducer, the payload mapping and the submit/export controller.
package form

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/print-quote-service/internal/catalog"
)

// Field names a draft field by its form (camelCase) name.
type Field string

const (
	FieldClientName          Field = "clientName"
	FieldProductType         Field = "productType"
	FieldFinishedSize        Field = "finishedSize"
	FieldPageCount           Field = "pageCount"
	FieldSidedness           Field = "sidedness"
	FieldCoverStock          Field = "coverStock"
	FieldTextStock           Field = "textStock"
	FieldFinishingOptions    Field = "finishingOptions"
	FieldQuantity            Field = "quantity"
	FieldDeliveryLocation    Field = "deliveryLocation"
	FieldSpecialRequirements Field = "specialRequirements"
	FieldInkType             Field = "inkType"
	FieldPMSColors           Field = "pmsColors"
	FieldPMSColorCount       Field = "pmsColorCount"
)

// Fields lists every draft field in form order.
var Fields = []Field{
	FieldClientName,
	FieldProductType,
	FieldFinishedSize,
	FieldPageCount,
	FieldSidedness,
	FieldCoverStock,
	FieldTextStock,
	FieldFinishingOptions,
	FieldQuantity,
	FieldDeliveryLocation,
	FieldSpecialRequirements,
	FieldInkType,
	FieldPMSColors,
	FieldPMSColorCount,
}

// Draft is the editable quote request. Integer fields are held as the raw text the
// user typed and are parsed only when a payload is built.
type Draft struct {
	ClientName          string
	ProductType         string
	FinishedSize        string
	PageCount           string
	Sidedness           string
	CoverStock          string
	TextStock           string
	FinishingOptions    []string
	Quantity            string
	DeliveryLocation    string
	SpecialRequirements string
	InkType             string
	PMSColors           bool
	PMSColorCount       string
}

// DefaultDraft returns a fresh, fully populated draft.
func DefaultDraft() Draft {
	return Draft{
		Sidedness:        catalog.SideSingle,
		FinishingOptions: []string{},
		InkType:          catalog.InkCMYK,
		PMSColorCount:    "1",
	}
}

// Clone returns a deep copy.
func (d Draft) Clone() Draft {
	out := d
	out.FinishingOptions = append(make([]string, 0, len(d.FinishingOptions)), d.FinishingOptions...)
	return out
}

// HasFinishing reports whether option is selected.
func (d Draft) HasFinishing(option string) bool {
	return slices.Contains(d.FinishingOptions, option)
}

// Value returns the text representation of a field, as a host would display it.
func (d Draft) Value(f Field) (string, error) {
	switch f {
	case FieldClientName:
		return d.ClientName, nil
	case FieldProductType:
		return d.ProductType, nil
	case FieldFinishedSize:
		return d.FinishedSize, nil
	case FieldPageCount:
		return d.PageCount, nil
	case FieldSidedness:
		return d.Sidedness, nil
	case FieldCoverStock:
		return d.CoverStock, nil
	case FieldTextStock:
		return d.TextStock, nil
	case FieldFinishingOptions:
		return strings.Join(d.FinishingOptions, ", "), nil
	case FieldQuantity:
		return d.Quantity, nil
	case FieldDeliveryLocation:
		return d.DeliveryLocation, nil
	case FieldSpecialRequirements:
		return d.SpecialRequirements, nil
	case FieldInkType:
		return d.InkType, nil
	case FieldPMSColors:
		return strconv.FormatBool(d.PMSColors), nil
	case FieldPMSColorCount:
		return d.PMSColorCount, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
}

// ValidationErrors maps a field to the reason it is invalid.
type ValidationErrors map[Field]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[Field(f)])
	}
	return "invalid draft: " + strings.Join(parts, "; ")
}

// Validate applies the constraints a host enforces on its inputs: required fields,
// catalog membership and the integer minimums. The controller itself does not call it.
func (d Draft) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(d.ClientName) == "" {
		errs[FieldClientName] = "required"
	}
	checkOption(errs, FieldProductType, d.ProductType, catalog.ProductTypes, true)
	checkOption(errs, FieldFinishedSize, d.FinishedSize, catalog.FinishedSizes, true)
	checkOption(errs, FieldSidedness, d.Sidedness, catalog.Sidedness, true)
	checkOption(errs, FieldCoverStock, d.CoverStock, catalog.CoverStocks, false)
	checkOption(errs, FieldTextStock, d.TextStock, catalog.TextStocks, false)
	checkOption(errs, FieldDeliveryLocation, d.DeliveryLocation, catalog.DeliveryLocations, true)
	checkOption(errs, FieldInkType, d.InkType, catalog.InkTypes, true)
	for _, opt := range d.FinishingOptions {
		if !slices.Contains(catalog.FinishingOptions, opt) {
			errs[FieldFinishingOptions] = fmt.Sprintf("unknown option %q", opt)
		}
	}

	checkInt(errs, FieldPageCount, d.PageCount, 1, 0)
	checkInt(errs, FieldQuantity, d.Quantity, 1, 0)
	if d.PMSColors {
		checkInt(errs, FieldPMSColorCount, d.PMSColorCount, 1, catalog.MaxPMSColors)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkOption(errs ValidationErrors, f Field, value string, options []string, required bool) {
	if value == "" {
		if required {
			errs[f] = "required"
		}
		return
	}
	if !slices.Contains(options, value) {
		errs[f] = fmt.Sprintf("unknown option %q", value)
	}
}

// checkInt validates a decimal integer in [lo, hi]; hi <= 0 means unbounded.
func checkInt(errs ValidationErrors, f Field, value string, lo, hi int) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	switch {
	case value == "":
		errs[f] = "required"
	case err != nil:
		errs[f] = "must be a whole number"
	case n < lo:
		errs[f] = fmt.Sprintf("must be at least %d", lo)
	case hi > 0 && n > hi:
		errs[f] = fmt.Sprintf("must be at most %d", hi)
	}
}
