package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

// In-memory stores for exercising the conversion flows without Mongo.

type fakeLeadStore struct {
	leads      map[string]*model.Lead
	failDelete bool
}

func newFakeLeadStore(leads ...*model.Lead) *fakeLeadStore {
	store := &fakeLeadStore{leads: make(map[string]*model.Lead)}
	for _, lead := range leads {
		store.leads[lead.LeadID] = lead
	}
	return store
}

func (f *fakeLeadStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	f.leads[lead.LeadID] = lead
	return nil
}

func (f *fakeLeadStore) GetUserLeads(ctx context.Context, userID string) ([]*model.Lead, error) {
	var out []*model.Lead
	for _, lead := range f.leads {
		if lead.UserID == userID {
			out = append(out, lead)
		}
	}
	return out, nil
}

func (f *fakeLeadStore) GetLead(ctx context.Context, leadID string, userID string) (*model.Lead, error) {
	lead, ok := f.leads[leadID]
	if !ok || lead.UserID != userID {
		return nil, errors.New("lead not found")
	}
	return lead, nil
}

func (f *fakeLeadStore) UpdateLead(ctx context.Context, leadID string, userID string, updates bson.M) error {
	lead, ok := f.leads[leadID]
	if !ok || lead.UserID != userID {
		return errors.New("lead not found")
	}
	if status, ok := updates["status"]; ok {
		lead.Status = status.(model.LeadStatus)
	}
	if score, ok := updates["score"]; ok {
		lead.Score = score.(int)
	}
	if next, ok := updates["next_step"]; ok {
		lead.NextStep = next.(*model.NextStep)
	}
	return nil
}

func (f *fakeLeadStore) DeleteLead(ctx context.Context, leadID string, userID string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	if _, ok := f.leads[leadID]; !ok {
		return errors.New("lead not found")
	}
	delete(f.leads, leadID)
	return nil
}

type fakeDealStore struct {
	deals      map[string]*model.Deal
	failDelete bool
}

func newFakeDealStore(deals ...*model.Deal) *fakeDealStore {
	store := &fakeDealStore{deals: make(map[string]*model.Deal)}
	for _, deal := range deals {
		store.deals[deal.DealID] = deal
	}
	return store
}

func (f *fakeDealStore) CreateDeal(ctx context.Context, deal *model.Deal) error {
	f.deals[deal.DealID] = deal
	return nil
}

func (f *fakeDealStore) GetDeal(ctx context.Context, dealID string, userID string) (*model.Deal, error) {
	deal, ok := f.deals[dealID]
	if !ok || deal.UserID != userID {
		return nil, errors.New("deal not found")
	}
	return deal, nil
}

func (f *fakeDealStore) DeleteDeal(ctx context.Context, dealID string, userID string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	if _, ok := f.deals[dealID]; !ok {
		return errors.New("deal not found")
	}
	delete(f.deals, dealID)
	return nil
}

type fakeContactStore struct {
	contacts   map[string]*model.Contact
	failDelete bool
}

func (f *fakeContactStore) GetContact(ctx context.Context, contactID string, userID string) (*model.Contact, error) {
	contact, ok := f.contacts[contactID]
	if !ok || contact.UserID != userID {
		return nil, errors.New("contact not found")
	}
	return contact, nil
}

func (f *fakeContactStore) DeleteContact(ctx context.Context, contactID string, userID string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	if _, ok := f.contacts[contactID]; !ok {
		return errors.New("contact not found")
	}
	delete(f.contacts, contactID)
	return nil
}

func TestConvertLeadToDeal(t *testing.T) {
	lead := &model.Lead{
		LeadID:  "lead-1",
		UserID:  "user-1",
		Name:    "Acme Bakery",
		Contact: "Maria Lopez",
		Email:   "maria@acme.test",
		Phone:   "555-0100",
		Status:  model.LeadStatusHot,
		Machines: []model.Machine{
			{Name: "Oven X", Price: 12000, Commission: 600},
			{Name: "Proofer", Price: 3000, Commission: 150},
		},
		Quotations: []model.Attachment{{URL: "https://files.test/q1.pdf", Name: "q1.pdf"}},
	}
	leads := newFakeLeadStore(lead)
	deals := newFakeDealStore()
	svc := &ConversionService{Leads: leads, Deals: deals}

	deal, err := svc.ConvertLeadToDeal(context.Background(), "lead-1", "user-1")
	if err != nil {
		t.Fatalf("ConvertLeadToDeal() error = %v", err)
	}

	if deal.Title != "Venta - Acme Bakery" {
		t.Errorf("deal title = %q, want %q", deal.Title, "Venta - Acme Bakery")
	}
	if deal.Value != 15000 {
		t.Errorf("deal value = %v, want 15000 (sum of machine prices)", deal.Value)
	}
	if deal.Stage != model.StageDiscovery {
		t.Errorf("deal stage = %s, want %s", deal.Stage, model.StageDiscovery)
	}
	if deal.Probability != 40 {
		t.Errorf("deal probability = %d, want 40", deal.Probability)
	}
	if deal.CloseDate == nil {
		t.Fatal("deal close date not set")
	}
	wantClose := time.Now().AddDate(0, 1, 0)
	if diff := deal.CloseDate.Sub(wantClose); diff < -time.Minute || diff > time.Minute {
		t.Errorf("deal close date = %v, want about one month out", deal.CloseDate)
	}
	if len(deal.Machines) != 2 || len(deal.Quotations) != 1 {
		t.Errorf("deal did not inherit machines/quotations")
	}
	if !strings.Contains(deal.Description, "Oven X") || !strings.Contains(deal.Description, "Proofer") {
		t.Errorf("deal description should list the machines, got %q", deal.Description)
	}

	// Source lead is gone, deal is stored.
	if _, ok := leads.leads["lead-1"]; ok {
		t.Error("converted lead still exists")
	}
	if _, ok := deals.deals[deal.DealID]; !ok {
		t.Error("created deal not stored")
	}
}

func TestConvertLeadToDealCompensatesOnDeleteFailure(t *testing.T) {
	lead := &model.Lead{LeadID: "lead-1", UserID: "user-1", Name: "Acme"}
	leads := newFakeLeadStore(lead)
	leads.failDelete = true
	deals := newFakeDealStore()
	svc := &ConversionService{Leads: leads, Deals: deals}

	_, err := svc.ConvertLeadToDeal(context.Background(), "lead-1", "user-1")
	if err == nil {
		t.Fatal("expected error when lead delete fails")
	}

	// The inserted deal must be rolled back so the record does not
	// exist on both boards.
	if len(deals.deals) != 0 {
		t.Errorf("deal store holds %d deals after failed conversion, want 0", len(deals.deals))
	}
	if _, ok := leads.leads["lead-1"]; !ok {
		t.Error("source lead should survive a failed conversion")
	}
}

func TestRevertDealToLead(t *testing.T) {
	closeDate := time.Now().AddDate(0, 1, 0)
	deal := &model.Deal{
		DealID:       "deal-1",
		UserID:       "user-1",
		Title:        "Venta - Acme Bakery",
		Client:       "Acme Bakery",
		Contact:      "Maria Lopez",
		ContactEmail: "maria@acme.test",
		Value:        15000,
		Stage:        model.StageNegotiation,
		CloseDate:    &closeDate,
		Machines:     []model.Machine{{Name: "Oven X", Price: 12000}},
	}
	leads := newFakeLeadStore()
	deals := newFakeDealStore(deal)
	svc := &ConversionService{Leads: leads, Deals: deals}

	lead, err := svc.RevertDealToLead(context.Background(), "deal-1", "user-1")
	if err != nil {
		t.Fatalf("RevertDealToLead() error = %v", err)
	}

	if lead.Status != model.LeadStatusWarm {
		t.Errorf("reverted lead status = %s, want warm", lead.Status)
	}
	if lead.Score != 70 {
		t.Errorf("reverted lead score = %d, want 70", lead.Score)
	}
	if !strings.Contains(lead.Notes, "Venta - Acme Bakery") {
		t.Errorf("reverted lead notes should reference the deal title, got %q", lead.Notes)
	}
	if !strings.Contains(lead.Notes, "15000") {
		t.Errorf("reverted lead notes should reference the deal value, got %q", lead.Notes)
	}
	if _, ok := deals.deals["deal-1"]; ok {
		t.Error("reverted deal still exists")
	}
}

func TestRevertDealCompensatesOnDeleteFailure(t *testing.T) {
	deal := &model.Deal{DealID: "deal-1", UserID: "user-1", Title: "Venta - Acme", Client: "Acme"}
	leads := newFakeLeadStore()
	deals := newFakeDealStore(deal)
	deals.failDelete = true
	svc := &ConversionService{Leads: leads, Deals: deals}

	_, err := svc.RevertDealToLead(context.Background(), "deal-1", "user-1")
	if err == nil {
		t.Fatal("expected error when deal delete fails")
	}
	if len(leads.leads) != 0 {
		t.Errorf("lead store holds %d leads after failed revert, want 0", len(leads.leads))
	}
}

func TestConvertContactToLead(t *testing.T) {
	contact := &model.Contact{
		ContactID: "contact-1",
		UserID:    "user-1",
		Name:      "Maria Lopez",
		Company:   "Acme Bakery",
		Position:  "Purchasing",
		Email:     "maria@acme.test",
	}
	contacts := &fakeContactStore{contacts: map[string]*model.Contact{"contact-1": contact}}
	leads := newFakeLeadStore()
	svc := &ConversionService{Leads: leads, Deals: newFakeDealStore(), Contacts: contacts}

	lead, err := svc.ConvertContactToLead(context.Background(), "contact-1", "user-1")
	if err != nil {
		t.Fatalf("ConvertContactToLead() error = %v", err)
	}

	if lead.Name != "Acme Bakery" {
		t.Errorf("lead name = %q, want the contact's company", lead.Name)
	}
	if lead.Contact != "Maria Lopez" {
		t.Errorf("lead contact = %q, want the contact's name", lead.Contact)
	}
	if lead.Status != model.LeadStatusNew || lead.Score != 50 {
		t.Errorf("new lead defaults = %s/%d, want new/50", lead.Status, lead.Score)
	}
	if lead.Source != "Converted from Contact" {
		t.Errorf("lead source = %q, want %q", lead.Source, "Converted from Contact")
	}
	if !strings.Contains(lead.Notes, "Purchasing") {
		t.Errorf("lead notes should reference the contact's position, got %q", lead.Notes)
	}

	// The contact moved into the pipeline, so the address-book entry is gone.
	if _, ok := contacts.contacts["contact-1"]; ok {
		t.Error("converted contact still exists")
	}
	if _, ok := leads.leads[lead.LeadID]; !ok {
		t.Error("created lead not stored")
	}
}

func TestConvertContactCompensatesOnDeleteFailure(t *testing.T) {
	contact := &model.Contact{ContactID: "contact-1", UserID: "user-1", Name: "Maria Lopez"}
	contacts := &fakeContactStore{contacts: map[string]*model.Contact{"contact-1": contact}, failDelete: true}
	leads := newFakeLeadStore()
	svc := &ConversionService{Leads: leads, Deals: newFakeDealStore(), Contacts: contacts}

	_, err := svc.ConvertContactToLead(context.Background(), "contact-1", "user-1")
	if err == nil {
		t.Fatal("expected error when contact delete fails")
	}
	if len(leads.leads) != 0 {
		t.Errorf("lead store holds %d leads after failed conversion, want 0", len(leads.leads))
	}
	if _, ok := contacts.contacts["contact-1"]; !ok {
		t.Error("source contact should survive a failed conversion")
	}
}
