package model

import "time"

// Contact is a standalone address-book entry, independent of the sales
// pipeline until converted into a lead.
type Contact struct {
	ContactID  string       `bson:"_id,omitempty" json:"id"`
	UserID     string       `bson:"user_id" json:"user_id"`
	Name       string       `bson:"name" json:"name" binding:"required"`
	Company    string       `bson:"company,omitempty" json:"company,omitempty"`
	Position   string       `bson:"position,omitempty" json:"position,omitempty"`
	Email      string       `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string       `bson:"phone,omitempty" json:"phone,omitempty"`
	SaleAmount float64      `bson:"sale_amount,omitempty" json:"sale_amount,omitempty"`
	Commission float64      `bson:"commission,omitempty" json:"commission,omitempty"`
	Machines   []Machine    `bson:"machines,omitempty" json:"machines,omitempty"`
	Quotations []Attachment `bson:"quotations,omitempty" json:"quotations,omitempty"`
	CreatedAt  time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `bson:"updated_at" json:"updated_at"`
}
