package form

import "fmt"

// Change is one user edit. Value carries text and select input; Checked carries
// checkbox input for pmsColors. For finishingOptions, Value names the option to toggle.
type Change struct {
	Field   Field
	Value   string
	Checked bool
}

// Set builds a scalar change.
func Set(f Field, value string) Change {
	return Change{Field: f, Value: value}
}

// Toggle builds a finishing option toggle.
func Toggle(option string) Change {
	return Change{Field: FieldFinishingOptions, Value: option}
}

// Check builds a checkbox change.
func Check(f Field, checked bool) Change {
	return Change{Field: f, Checked: checked}
}

// Reduce applies ch to d and returns the new draft. d is never modified.
// Only the named field changes; pmsColorCount keeps its value when pmsColors is turned off.
func Reduce(d Draft, ch Change) (Draft, error) {
	next := d.Clone()

	switch ch.Field {
	case FieldClientName:
		next.ClientName = ch.Value
	case FieldProductType:
		next.ProductType = ch.Value
	case FieldFinishedSize:
		next.FinishedSize = ch.Value
	case FieldPageCount:
		next.PageCount = ch.Value
	case FieldSidedness:
		next.Sidedness = ch.Value
	case FieldCoverStock:
		next.CoverStock = ch.Value
	case FieldTextStock:
		next.TextStock = ch.Value
	case FieldFinishingOptions:
		next.FinishingOptions = toggle(next.FinishingOptions, ch.Value)
	case FieldQuantity:
		next.Quantity = ch.Value
	case FieldDeliveryLocation:
		next.DeliveryLocation = ch.Value
	case FieldSpecialRequirements:
		next.SpecialRequirements = ch.Value
	case FieldInkType:
		next.InkType = ch.Value
	case FieldPMSColors:
		next.PMSColors = ch.Checked
	case FieldPMSColorCount:
		next.PMSColorCount = ch.Value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, ch.Field)
	}

	return next, nil
}

func toggle(options []string, option string) []string {
	for i, o := range options {
		if o == option {
			return append(options[:i:i], options[i+1:]...)
		}
	}
	return append(options, option)
}
