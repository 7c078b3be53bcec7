package model

import "time"

type LeadStatus string

const (
	LeadStatusNew  LeadStatus = "new"
	LeadStatusHot  LeadStatus = "hot"
	LeadStatusWarm LeadStatus = "warm"
	LeadStatusCold LeadStatus = "cold"
)

// ValidLeadStatus reports whether s is one of the known lead statuses.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusHot, LeadStatusWarm, LeadStatusCold:
		return true
	}
	return false
}

// Machine is a quoted line item on a lead or deal.
type Machine struct {
	Name       string  `bson:"name" json:"name"`
	Price      float64 `bson:"price" json:"price"`
	Commission float64 `bson:"commission" json:"commission"`
}

// Attachment is a stored quotation document, kept as a public URL plus
// its original filename. Uploads themselves happen outside this service.
type Attachment struct {
	URL  string `bson:"url" json:"url"`
	Name string `bson:"name" json:"name"`
}

// NextStep is the lead's pending follow-up action.
type NextStep struct {
	Type string     `bson:"type" json:"type"`
	Date *time.Time `bson:"date,omitempty" json:"date,omitempty"`
}

// ActivityStep is one entry of a lead's activity checklist.
type ActivityStep struct {
	Checked bool       `bson:"checked" json:"checked"`
	Date    *time.Time `bson:"date,omitempty" json:"date,omitempty"`
}

// Activity checklist keys, in pipeline order.
const (
	ActivityQuotationSent   = "quotation_sent"
	ActivityQuotationReview = "quotation_review"
	ActivityAppointment     = "appointment"
	ActivityZoom            = "zoom"
	ActivityClosing         = "closing"
)

type Lead struct {
	LeadID         string                  `bson:"_id,omitempty" json:"id"`
	UserID         string                  `bson:"user_id" json:"user_id"`
	Name           string                  `bson:"name" json:"name" binding:"required"`
	Contact        string                  `bson:"contact" json:"contact"`
	Position       string                  `bson:"position,omitempty" json:"position,omitempty"`
	Email          string                  `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string                  `bson:"phone,omitempty" json:"phone,omitempty"`
	Status         LeadStatus              `bson:"status" json:"status"`
	Score          int                     `bson:"score" json:"score"`
	Source         string                  `bson:"source,omitempty" json:"source,omitempty"`
	Machines       []Machine               `bson:"machines,omitempty" json:"machines,omitempty"`
	Notes          string                  `bson:"notes,omitempty" json:"notes,omitempty"`
	NextStep       *NextStep               `bson:"next_step,omitempty" json:"next_step,omitempty"`
	ActivityStatus map[string]ActivityStep `bson:"activity_status,omitempty" json:"activity_status,omitempty"`
	Quotations     []Attachment            `bson:"quotations,omitempty" json:"quotations,omitempty"`
	FollowUpDate   *time.Time              `bson:"follow_up_date,omitempty" json:"follow_up_date,omitempty"`
	LastActivity   time.Time               `bson:"last_activity" json:"last_activity"`
	CreatedAt      time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time               `bson:"updated_at" json:"updated_at"`
}

// Value is the lead's total quoted value, the sum of its line-item prices.
func (l *Lead) Value() float64 {
	var total float64
	for _, m := range l.Machines {
		total += m.Price
	}
	return total
}

// Commission is the sum of the lead's line-item commissions.
func (l *Lead) Commission() float64 {
	var total float64
	for _, m := range l.Machines {
		total += m.Commission
	}
	return total
}

// NewActivityStatus returns a fresh checklist. quotationSent is pre-checked
// when the lead was created with quotation documents already attached.
func NewActivityStatus(quotationSent bool, now time.Time) map[string]ActivityStep {
	status := map[string]ActivityStep{
		ActivityQuotationSent:   {},
		ActivityQuotationReview: {},
		ActivityAppointment:     {},
		ActivityZoom:            {},
		ActivityClosing:         {},
	}
	if quotationSent {
		status[ActivityQuotationSent] = ActivityStep{Checked: true, Date: &now}
	}
	return status
}
