package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/catalog"
	"github.com/guttosm/print-quote-service/internal/form"
)

const noneOption = "(none)"

var fieldLabels = map[form.Field]string{
	form.FieldClientName:          "Client name",
	form.FieldProductType:         "Product type",
	form.FieldFinishedSize:        "Finished size",
	form.FieldPageCount:           "Page count",
	form.FieldSidedness:           "Sides printed",
	form.FieldCoverStock:          "Cover stock",
	form.FieldTextStock:           "Text stock",
	form.FieldFinishingOptions:    "Finishing options",
	form.FieldQuantity:            "Quantity",
	form.FieldDeliveryLocation:    "Delivery location",
	form.FieldSpecialRequirements: "Special requirements",
	form.FieldInkType:             "Ink type",
	form.FieldPMSColors:           "PMS colours?",
	form.FieldPMSColorCount:       "Number of PMS colours",
}

// Runner walks the form fields with a PromptDriver and drives a form.Controller.
type Runner struct {
	driver     PromptDriver
	controller *form.Controller
}

// NewRunner creates a runner.
func NewRunner(controller *form.Controller, driver PromptDriver) *Runner {
	return &Runner{driver: driver, controller: controller}
}

// Run fills, submits and optionally exports quotes until the user stops.
// A failed submit keeps the draft, so the next round starts from the same answers.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := r.Fill(ctx); err != nil {
			return err
		}

		result, submitErr := r.controller.Submit(ctx)
		if err := r.driver.Info(ctx, r.controller.State().Message); err != nil {
			return err
		}

		if submitErr == nil && result != nil {
			if err := r.offerExport(ctx); err != nil {
				return err
			}
		}

		again, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: againMessage(submitErr),
			Default: submitErr != nil,
		})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func againMessage(submitErr error) string {
	if submitErr != nil {
		return "Edit and resubmit?"
	}
	return "Request another quote?"
}

func (r *Runner) offerExport(ctx context.Context) error {
	export, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Download the quote as PDF?", Default: true})
	if err != nil || !export {
		return err
	}
	if _, err := r.controller.Export(ctx); err != nil {
		log.Debug().Err(err).Msg("export failed")
	}
	return r.driver.Info(ctx, r.controller.State().ExportMessage)
}

// Fill prompts for every field in form order, starting from the current draft.
func (r *Runner) Fill(ctx context.Context) error {
	for _, f := range form.Fields {
		if err := r.promptField(ctx, f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, f form.Field) error {
	draft := r.controller.State().Draft
	current, err := draft.Value(f)
	if err != nil {
		return err
	}
	label := fieldLabels[f]

	switch f {
	case form.FieldClientName:
		return r.input(ctx, f, InputConfig{Message: label, Default: current, Validator: required})
	case form.FieldSpecialRequirements:
		return r.input(ctx, f, InputConfig{Message: label, Default: current})
	case form.FieldPageCount, form.FieldQuantity:
		return r.input(ctx, f, InputConfig{Message: label, Default: current, Validator: wholeNumber(1, 0)})
	case form.FieldPMSColorCount:
		if !draft.PMSColors {
			return nil
		}
		return r.input(ctx, f, InputConfig{
			Message:   label,
			Default:   current,
			Help:      fmt.Sprintf("Between 1 and %d", catalog.MaxPMSColors),
			Validator: wholeNumber(1, catalog.MaxPMSColors),
		})
	case form.FieldProductType:
		return r.choose(ctx, f, label, catalog.ProductTypes, current, false)
	case form.FieldFinishedSize:
		return r.choose(ctx, f, label, catalog.FinishedSizes, current, false)
	case form.FieldSidedness:
		return r.choose(ctx, f, label, catalog.Sidedness, current, false)
	case form.FieldCoverStock:
		return r.choose(ctx, f, label, catalog.CoverStocks, current, true)
	case form.FieldTextStock:
		return r.choose(ctx, f, label, catalog.TextStocks, current, true)
	case form.FieldDeliveryLocation:
		return r.choose(ctx, f, label, catalog.DeliveryLocations, current, false)
	case form.FieldInkType:
		return r.choose(ctx, f, label, catalog.InkTypes, current, false)
	case form.FieldFinishingOptions:
		return r.finishing(ctx, draft, label)
	case form.FieldPMSColors:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: draft.PMSColors})
		if err != nil {
			return err
		}
		return r.controller.Change(form.Check(f, checked))
	}
	return fmt.Errorf("%w: %q", form.ErrUnknownField, f)
}

func (r *Runner) input(ctx context.Context, f form.Field, cfg InputConfig) error {
	value, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return err
	}
	return r.controller.Change(form.Set(f, strings.TrimSpace(value)))
}

// choose offers options; optional fields get a leading "(none)" that maps to "".
func (r *Runner) choose(ctx context.Context, f form.Field, label string, options []string, current string, optional bool) error {
	choices := options
	if optional {
		choices = append([]string{noneOption}, options...)
	}

	def := 0
	for i, o := range choices {
		if o == current {
			def = i
			break
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: choices, DefaultIndex: def, PageSize: 12})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("selection %d out of range", idx)
	}

	value := choices[idx]
	if optional && idx == 0 {
		value = ""
	}
	return r.controller.Change(form.Set(f, value))
}

// finishing toggles every option whose selection differs from the draft.
func (r *Runner) finishing(ctx context.Context, draft form.Draft, label string) error {
	var defaults []int
	for i, o := range catalog.FinishingOptions {
		if draft.HasFinishing(o) {
			defaults = append(defaults, i)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  label,
		Options:  catalog.FinishingOptions,
		Defaults: defaults,
		PageSize: 12,
	})
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(catalog.FinishingOptions) {
			selected[catalog.FinishingOptions[idx]] = true
		}
	}
	for _, o := range catalog.FinishingOptions {
		if selected[o] != draft.HasFinishing(o) {
			if err := r.controller.Change(form.Toggle(o)); err != nil {
				return err
			}
		}
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

// wholeNumber accepts decimal integers in [lo, hi]; hi <= 0 means unbounded.
func wholeNumber(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		switch {
		case err != nil:
			return errors.New("enter a whole number")
		case n < lo:
			return fmt.Errorf("must be at least %d", lo)
		case hi > 0 && n > hi:
			return fmt.Errorf("must be at most %d", hi)
		}
		return nil
	}
}
