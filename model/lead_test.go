package model

import (
	"testing"
	"time"
)

func TestLeadValueAndCommission(t *testing.T) {
	lead := &Lead{
		Machines: []Machine{
			{Name: "Oven X", Price: 12000, Commission: 600},
			{Name: "Proofer", Price: 3000, Commission: 150},
		},
	}

	if got := lead.Value(); got != 15000 {
		t.Errorf("Value() = %v, want 15000", got)
	}
	if got := lead.Commission(); got != 750 {
		t.Errorf("Commission() = %v, want 750", got)
	}

	empty := &Lead{}
	if got := empty.Value(); got != 0 {
		t.Errorf("Value() on empty lead = %v, want 0", got)
	}
}

func TestNewActivityStatus(t *testing.T) {
	now := time.Now()

	status := NewActivityStatus(false, now)
	if len(status) != 5 {
		t.Fatalf("checklist has %d entries, want 5", len(status))
	}
	for key, step := range status {
		if step.Checked {
			t.Errorf("step %s should start unchecked", key)
		}
	}

	withQuote := NewActivityStatus(true, now)
	step := withQuote[ActivityQuotationSent]
	if !step.Checked {
		t.Error("quotation_sent should be checked when quotations exist")
	}
	if step.Date == nil || !step.Date.Equal(now) {
		t.Errorf("quotation_sent date = %v, want %v", step.Date, now)
	}
	for _, key := range []string{ActivityQuotationReview, ActivityAppointment, ActivityZoom, ActivityClosing} {
		if withQuote[key].Checked {
			t.Errorf("step %s should remain unchecked", key)
		}
	}
}

func TestValidLeadStatus(t *testing.T) {
	for _, status := range []LeadStatus{LeadStatusNew, LeadStatusHot, LeadStatusWarm, LeadStatusCold} {
		if !ValidLeadStatus(status) {
			t.Errorf("ValidLeadStatus(%s) = false, want true", status)
		}
	}
	if ValidLeadStatus("boiling") {
		t.Error("ValidLeadStatus(boiling) = true, want false")
	}
}
