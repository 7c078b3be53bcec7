package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskCategoryPayment marks payment-reminder tasks, which carry the
// payment concept and amount sub-fields.
const TaskCategoryPayment = "Pago"

type Task struct {
	TaskID         string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Title          string    `bson:"title" json:"title" binding:"required"`
	Due            time.Time `bson:"due" json:"due"`
	Client         string    `bson:"client,omitempty" json:"client,omitempty"`
	Priority       Priority  `bson:"priority" json:"priority"`
	Completed      bool      `bson:"completed" json:"completed"`
	LeadID         string    `bson:"lead_id,omitempty" json:"lead_id,omitempty"`
	PaymentConcept string    `bson:"payment_concept,omitempty" json:"payment_concept,omitempty"`
	PaymentAmount  float64   `bson:"payment_amount,omitempty" json:"payment_amount,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`

	HighPriority   int `json:"high_priority"`
	MediumPriority int `json:"medium_priority"`
	LowPriority    int `json:"low_priority"`

	Overdue  int `json:"overdue"`
	DueToday int `json:"due_today"`
	Upcoming int `json:"upcoming"` // Due in next 7 days
}
