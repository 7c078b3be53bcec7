package model

import "time"

// StageStats is one kanban column header: how many deals sit in the
// stage and what they are worth together.
type StageStats struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// DashboardStats is the aggregate snapshot behind the dashboard cards.
type DashboardStats struct {
	LeadStats struct {
		Total         int                `json:"total"`
		ByStatus      map[LeadStatus]int `json:"by_status"`
		PossibleSales float64            `json:"possible_sales"`
	} `json:"lead_stats"`

	PipelineStats struct {
		Total   int                      `json:"total"`
		ByStage map[DealStage]StageStats `json:"by_stage"`
	} `json:"pipeline_stats"`

	TaskStats TaskStats `json:"task_stats"`

	ContactCount  int `json:"contact_count"`
	ShipmentCount int `json:"shipment_count"`

	ActivityStats struct {
		LastActive     time.Time `json:"last_active"`
		AccountCreated time.Time `json:"account_created"`
		TotalSessions  int       `json:"total_sessions"`
	} `json:"activity_stats"`
}
