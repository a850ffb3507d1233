// Package model defines the core domain entities for the print quote service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteStatus is the lifecycle state of a stored quote.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCompleted QuoteStatus = "completed"
)

// PrintSpec is the print job a quote was requested for.
type PrintSpec struct {
	ClientName          string   `bson:"client_name" json:"client_name" example:"Acme"`
	ProductType         string   `bson:"product_type" json:"product_type" example:"Flyer"`
	FinishedSize        string   `bson:"finished_size" json:"finished_size" example:"A4 (210 × 297mm)"`
	PageCount           int      `bson:"page_count" json:"page_count" example:"1"`
	Sidedness           string   `bson:"sidedness" json:"sidedness" example:"single"`
	CoverStock          string   `bson:"cover_stock,omitempty" json:"cover_stock,omitempty"`
	TextStock           string   `bson:"text_stock,omitempty" json:"text_stock,omitempty"`
	FinishingOptions    []string `bson:"finishing_options" json:"finishing_options"`
	Quantity            int      `bson:"quantity" json:"quantity" example:"100"`
	DeliveryLocation    string   `bson:"delivery_location" json:"delivery_location" example:"Metro Melbourne"`
	SpecialRequirements string   `bson:"special_requirements,omitempty" json:"special_requirements,omitempty"`
	InkType             string   `bson:"ink_type" json:"ink_type" example:"CMYK"`
	PMSColors           bool     `bson:"pms_colors" json:"pms_colors"`
	PMSColorCount       int      `bson:"pms_color_count" json:"pms_color_count" example:"1"`
}

// CostBreakdown shows how an estimate was reached.
//
// @Description Cost estimate breakdown
type CostBreakdown struct {
	UnitCost      float64 `bson:"unit_cost" json:"unit_cost" example:"1.05"`
	PrintCost     float64 `bson:"print_cost" json:"print_cost" example:"105.00"`
	DiscountRate  float64 `bson:"discount_rate" json:"discount_rate" example:"0.05"`
	Discount      float64 `bson:"discount" json:"discount" example:"5.25"`
	DeliveryCost  float64 `bson:"delivery_cost" json:"delivery_cost" example:"15.00"`
	EstimatedCost float64 `bson:"estimated_cost" json:"estimated_cost" example:"114.75"`
} // @name CostBreakdown

// Quote is a stored quote.
type Quote struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	QuoteID       string             `bson:"quote_id" json:"quote_id"`
	PrintSpec     `bson:",inline"`
	EstimatedCost float64            `bson:"estimated_cost" json:"estimated_cost"`
	Breakdown     CostBreakdown      `bson:"breakdown" json:"breakdown"`
	Status        QuoteStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Version identifies the rendered state of the quote; it changes whenever the quote is updated.
func (q *Quote) Version() int64 {
	if q.UpdatedAt != nil {
		return q.UpdatedAt.UnixNano()
	}
	return q.CreatedAt.UnixNano()
}

// QuoteListOptions pages the quote listing.
type QuoteListOptions struct {
	Limit  int
	Offset int
}

// Document is a rendered quote ready for download.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}
