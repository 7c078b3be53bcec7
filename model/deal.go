package model

import "time"

type DealStage string

const (
	StageDiscovery     DealStage = "discovery"
	StageQualification DealStage = "qualification"
	StageProposal      DealStage = "proposal"
	StageNegotiation   DealStage = "negotiation"
	StageClosedWon     DealStage = "closed-won"
	StageClosedLost    DealStage = "closed-lost"
)

// Stages lists the pipeline stages in board order.
var Stages = []DealStage{
	StageDiscovery,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// ValidDealStage reports whether s is a known pipeline stage.
func ValidDealStage(s DealStage) bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Closing checklist keys.
const (
	ClosingContractReview  = "contract_review"
	ClosingWaitingPO       = "waiting_po"
	ClosingPOReceived      = "po_received"
	ClosingDepositReceived = "deposit_received"
)

// SalesConditions holds the agreed payment split, in percentages.
type SalesConditions struct {
	AdvancePercentage int    `bson:"advance_percentage" json:"advance_percentage"`
	SecondPercentage  int    `bson:"second_percentage" json:"second_percentage"`
	ThirdPercentage   int    `bson:"third_percentage" json:"third_percentage"`
	Notes             string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ClientFile is the deal's onboarding dossier: fiscal data, delivery
// address and the agreed payment conditions.
type ClientFile struct {
	TaxData         string          `bson:"tax_data,omitempty" json:"tax_data,omitempty"`
	DeliveryAddress string          `bson:"delivery_address,omitempty" json:"delivery_address,omitempty"`
	HasCSF          bool            `bson:"has_csf" json:"has_csf"`
	CSFFile         *Attachment     `bson:"csf_file,omitempty" json:"csf_file,omitempty"`
	SalesConditions SalesConditions `bson:"sales_conditions" json:"sales_conditions"`
}

type Deal struct {
	DealID        string                  `bson:"_id,omitempty" json:"id"`
	UserID        string                  `bson:"user_id" json:"user_id"`
	Title         string                  `bson:"title" json:"title" binding:"required"`
	Client        string                  `bson:"client" json:"client"`
	Contact       string                  `bson:"contact,omitempty" json:"contact,omitempty"`
	ContactEmail  string                  `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhone  string                  `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Value         float64                 `bson:"value" json:"value"`
	Stage         DealStage               `bson:"stage" json:"stage"`
	Probability   int                     `bson:"probability" json:"probability"`
	CloseDate     *time.Time              `bson:"close_date,omitempty" json:"close_date,omitempty"`
	Description   string                  `bson:"description,omitempty" json:"description,omitempty"`
	Machines      []Machine               `bson:"machines,omitempty" json:"machines,omitempty"`
	Quotations    []Attachment            `bson:"quotations,omitempty" json:"quotations,omitempty"`
	ClosingStatus map[string]ActivityStep `bson:"closing_status,omitempty" json:"closing_status,omitempty"`
	ClientFile    *ClientFile             `bson:"client_file,omitempty" json:"client_file,omitempty"`
	LastActivity  time.Time               `bson:"last_activity" json:"last_activity"`
	CreatedAt     time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time               `bson:"updated_at" json:"updated_at"`
}
