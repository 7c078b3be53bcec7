package usecase

import (
	"testing"
	"time"

	"dealflow/model"
)

func sampleLeads() []*model.Lead {
	return []*model.Lead{
		{LeadID: "1", Name: "Acme Bakery", Contact: "Maria Lopez", Email: "maria@acme.test", Status: model.LeadStatusHot,
			Machines: []model.Machine{{Name: "Oven X", Price: 12000}}},
		{LeadID: "2", Name: "Bravo Foods", Contact: "Juan Perez", Email: "juan@bravo.test", Status: model.LeadStatusWarm,
			Machines: []model.Machine{{Name: "Mixer", Price: 3000}, {Name: "Proofer", Price: 2000}}},
		{LeadID: "3", Name: "Cardio Gym", Contact: "Ana Ruiz", Email: "ana@cardio.test", Status: model.LeadStatusCold},
	}
}

func TestFilterLeads(t *testing.T) {
	leads := sampleLeads()

	tests := []struct {
		name    string
		query   string
		status  model.LeadStatus
		wantIDs []string
	}{
		{name: "no filters returns all", query: "", status: "", wantIDs: []string{"1", "2", "3"}},
		{name: "status all returns all", query: "", status: "all", wantIDs: []string{"1", "2", "3"}},
		{name: "query matches name case-insensitively", query: "acme", status: "", wantIDs: []string{"1"}},
		{name: "query matches contact", query: "juan", status: "", wantIDs: []string{"2"}},
		{name: "query matches email", query: "cardio.test", status: "", wantIDs: []string{"3"}},
		{name: "status filter", query: "", status: model.LeadStatusWarm, wantIDs: []string{"2"}},
		{name: "query and status combined", query: "a", status: model.LeadStatusHot, wantIDs: []string{"1"}},
		{name: "no match", query: "zebra", status: "", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLeads(leads, tt.query, tt.status)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterLeads() returned %d leads, want %d", len(got), len(tt.wantIDs))
			}
			for i, lead := range got {
				if lead.LeadID != tt.wantIDs[i] {
					t.Errorf("FilterLeads()[%d] = %s, want %s", i, lead.LeadID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestTotalPossibleSales(t *testing.T) {
	leads := sampleLeads()
	got := TotalPossibleSales(leads)
	want := 17000.0
	if got != want {
		t.Errorf("TotalPossibleSales() = %v, want %v", got, want)
	}

	if got := TotalPossibleSales(nil); got != 0 {
		t.Errorf("TotalPossibleSales(nil) = %v, want 0", got)
	}
}

func TestDealsByStage(t *testing.T) {
	now := time.Now()
	deals := []*model.Deal{
		{DealID: "a", Stage: model.StageDiscovery, LastActivity: now.Add(-2 * time.Hour)},
		{DealID: "b", Stage: model.StageDiscovery, LastActivity: now},
		{DealID: "c", Stage: model.StageClosedWon, LastActivity: now.Add(-time.Hour)},
	}

	columns := DealsByStage(deals)

	if len(columns) != len(model.Stages) {
		t.Fatalf("DealsByStage() returned %d columns, want %d", len(columns), len(model.Stages))
	}
	for _, stage := range model.Stages {
		if _, ok := columns[stage]; !ok {
			t.Errorf("DealsByStage() missing column for stage %s", stage)
		}
	}

	discovery := columns[model.StageDiscovery]
	if len(discovery) != 2 {
		t.Fatalf("discovery column has %d deals, want 2", len(discovery))
	}
	// Most recent activity first.
	if discovery[0].DealID != "b" || discovery[1].DealID != "a" {
		t.Errorf("discovery column order = [%s %s], want [b a]", discovery[0].DealID, discovery[1].DealID)
	}

	if len(columns[model.StageProposal]) != 0 {
		t.Errorf("empty stage should have an empty column")
	}
}

func TestFilterContacts(t *testing.T) {
	contacts := []*model.Contact{
		{ContactID: "1", Name: "Maria Lopez", Company: "Acme", Email: "maria@acme.test"},
		{ContactID: "2", Name: "Juan Perez", Company: "Bravo Foods", Email: "juan@bravo.test"},
	}

	if got := FilterContacts(contacts, ""); len(got) != 2 {
		t.Errorf("empty query returned %d contacts, want 2", len(got))
	}
	if got := FilterContacts(contacts, "BRAVO"); len(got) != 1 || got[0].ContactID != "2" {
		t.Errorf("company query failed: %+v", got)
	}
	if got := FilterContacts(contacts, "maria@"); len(got) != 1 || got[0].ContactID != "1" {
		t.Errorf("email query failed: %+v", got)
	}
	if got := FilterContacts(contacts, "nobody"); len(got) != 0 {
		t.Errorf("no-match query returned %d contacts, want 0", len(got))
	}
}

func TestComputeTaskStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tasks := []*model.Task{
		{TaskID: "overdue", Due: now.Add(-48 * time.Hour), Priority: model.PriorityHigh},
		{TaskID: "today", Due: now.Add(2 * time.Hour), Priority: model.PriorityMedium},
		{TaskID: "this-week", Due: now.Add(3 * 24 * time.Hour), Priority: model.PriorityLow},
		{TaskID: "far-out", Due: now.Add(30 * 24 * time.Hour), Priority: model.PriorityLow},
		{TaskID: "done", Due: now.Add(-24 * time.Hour), Priority: model.PriorityHigh, Completed: true},
	}

	stats := ComputeTaskStats(tasks, now)

	if stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
	if stats.Completed != 1 {
		t.Errorf("Completed = %d, want 1", stats.Completed)
	}
	if stats.Pending != 4 {
		t.Errorf("Pending = %d, want 4", stats.Pending)
	}
	if stats.HighPriority != 2 {
		t.Errorf("HighPriority = %d, want 2", stats.HighPriority)
	}
	if stats.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1 (completed tasks never count)", stats.Overdue)
	}
	if stats.DueToday != 1 {
		t.Errorf("DueToday = %d, want 1", stats.DueToday)
	}
	if stats.Upcoming != 1 {
		t.Errorf("Upcoming = %d, want 1", stats.Upcoming)
	}
}
