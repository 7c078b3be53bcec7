package usecase

import (
	"context"
	"testing"
	"time"

	"dealflow/model"
)

type fakeFollowUpStore struct {
	upserts []*model.Task
}

func (f *fakeFollowUpStore) UpsertFollowUp(ctx context.Context, task *model.Task) error {
	// Replace any existing follow-up for the same lead, mirroring the
	// unique index on (user_id, lead_id).
	for i, existing := range f.upserts {
		if existing.UserID == task.UserID && existing.LeadID == task.LeadID {
			f.upserts[i] = task
			return nil
		}
	}
	f.upserts = append(f.upserts, task)
	return nil
}

func TestCreateLeadDefaults(t *testing.T) {
	leads := newFakeLeadStore()
	svc := &LeadService{Leads: leads, Tasks: &fakeFollowUpStore{}}

	lead := &model.Lead{UserID: "user-1", Name: "Acme Bakery"}
	if err := svc.CreateLead(context.Background(), lead); err != nil {
		t.Fatalf("CreateLead() error = %v", err)
	}

	if lead.LeadID == "" {
		t.Error("lead ID not assigned")
	}
	if lead.Status != model.LeadStatusNew {
		t.Errorf("default status = %s, want new", lead.Status)
	}
	if lead.Score != 50 {
		t.Errorf("default score = %d, want 50", lead.Score)
	}
	if lead.Source != "Manual Entry" {
		t.Errorf("default source = %q, want Manual Entry", lead.Source)
	}
	if len(lead.ActivityStatus) != 5 {
		t.Errorf("activity checklist has %d entries, want 5", len(lead.ActivityStatus))
	}
	if step, ok := lead.ActivityStatus[model.ActivityQuotationSent]; !ok || step.Checked {
		t.Error("quotation_sent should start unchecked when no quotations attached")
	}
	if lead.NextStep == nil || lead.NextStep.Type != "Send Quotation" {
		t.Errorf("default next step = %+v, want Send Quotation", lead.NextStep)
	}
}

func TestCreateLeadWithQuotationsChecksFirstStep(t *testing.T) {
	svc := &LeadService{Leads: newFakeLeadStore(), Tasks: &fakeFollowUpStore{}}

	lead := &model.Lead{
		UserID:     "user-1",
		Name:       "Bravo Foods",
		Quotations: []model.Attachment{{URL: "https://files.test/q.pdf", Name: "q.pdf"}},
	}
	if err := svc.CreateLead(context.Background(), lead); err != nil {
		t.Fatalf("CreateLead() error = %v", err)
	}

	step := lead.ActivityStatus[model.ActivityQuotationSent]
	if !step.Checked || step.Date == nil {
		t.Errorf("quotation_sent should be pre-checked with a date, got %+v", step)
	}
}

func TestCreateLeadValidation(t *testing.T) {
	svc := &LeadService{Leads: newFakeLeadStore(), Tasks: &fakeFollowUpStore{}}

	tests := []struct {
		name string
		lead *model.Lead
	}{
		{name: "missing user", lead: &model.Lead{Name: "Acme"}},
		{name: "blank name", lead: &model.Lead{UserID: "u", Name: "   "}},
		{name: "bad status", lead: &model.Lead{UserID: "u", Name: "Acme", Status: "boiling"}},
		{name: "score out of range", lead: &model.Lead{UserID: "u", Name: "Acme", Score: 120}},
		{name: "negative machine price", lead: &model.Lead{UserID: "u", Name: "Acme",
			Machines: []model.Machine{{Name: "Oven", Price: -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.CreateLead(context.Background(), tt.lead); err == nil {
				t.Error("CreateLead() accepted an invalid lead")
			}
		})
	}
}

func TestScoreForStatus(t *testing.T) {
	bands := []struct {
		status model.LeadStatus
		min    int
		max    int
	}{
		{model.LeadStatusHot, 85, 99},
		{model.LeadStatusWarm, 60, 84},
		{model.LeadStatusCold, 30, 59},
		{model.LeadStatusNew, 50, 50},
	}

	for _, band := range bands {
		for i := 0; i < 50; i++ {
			score := ScoreForStatus(band.status)
			if score < band.min || score > band.max {
				t.Fatalf("ScoreForStatus(%s) = %d, want within [%d, %d]", band.status, score, band.min, band.max)
			}
		}
	}
}

func TestChangeStatusRescoresLead(t *testing.T) {
	lead := &model.Lead{LeadID: "lead-1", UserID: "user-1", Name: "Acme", Status: model.LeadStatusNew, Score: 50}
	leads := newFakeLeadStore(lead)
	svc := &LeadService{Leads: leads, Tasks: &fakeFollowUpStore{}}

	score, err := svc.ChangeStatus(context.Background(), "lead-1", "user-1", model.LeadStatusHot)
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if score < 85 || score > 99 {
		t.Errorf("hot score = %d, want within [85, 99]", score)
	}
	if lead.Status != model.LeadStatusHot {
		t.Errorf("lead status = %s, want hot", lead.Status)
	}
	if lead.Score != score {
		t.Errorf("stored score = %d, want %d", lead.Score, score)
	}

	if _, err := svc.ChangeStatus(context.Background(), "lead-1", "user-1", "invalid"); err == nil {
		t.Error("ChangeStatus() accepted an invalid status")
	}
}

func TestScheduleFollowUpReplacesExisting(t *testing.T) {
	lead := &model.Lead{LeadID: "lead-1", UserID: "user-1", Name: "Acme Bakery"}
	leads := newFakeLeadStore(lead)
	tasks := &fakeFollowUpStore{}
	svc := &LeadService{Leads: leads, Tasks: tasks}

	due1 := time.Now().Add(24 * time.Hour)
	first, err := svc.ScheduleFollowUp(context.Background(), "user-1", "lead-1", "Call", due1)
	if err != nil {
		t.Fatalf("ScheduleFollowUp() error = %v", err)
	}
	if first.Title != "Call with Acme Bakery" {
		t.Errorf("task title = %q, want %q", first.Title, "Call with Acme Bakery")
	}
	if first.LeadID != "lead-1" {
		t.Errorf("task lead link = %q, want lead-1", first.LeadID)
	}

	due2 := time.Now().Add(72 * time.Hour)
	second, err := svc.ScheduleFollowUp(context.Background(), "user-1", "lead-1", "Zoom", due2)
	if err != nil {
		t.Fatalf("second ScheduleFollowUp() error = %v", err)
	}

	// A lead keeps at most one follow-up task.
	if len(tasks.upserts) != 1 {
		t.Fatalf("store holds %d follow-ups, want 1", len(tasks.upserts))
	}
	if tasks.upserts[0].TaskID != second.TaskID {
		t.Error("second schedule should replace the first follow-up")
	}
	if lead.NextStep == nil || lead.NextStep.Type != "Zoom" {
		t.Errorf("lead next step = %+v, want Zoom", lead.NextStep)
	}
}
