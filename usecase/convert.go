package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealflow/model"
	"dealflow/utils"

	"github.com/google/uuid"
)

// DealStore is the persistence surface conversions need on the deals
// side. Satisfied by repository.DealsRepo.
type DealStore interface {
	CreateDeal(ctx context.Context, deal *model.Deal) error
	GetDeal(ctx context.Context, dealID string, userID string) (*model.Deal, error)
	DeleteDeal(ctx context.Context, dealID string, userID string) error
}

// ContactStore is the contacts surface used by contact-to-lead
// conversion. Satisfied by repository.ContactsRepo.
type ContactStore interface {
	GetContact(ctx context.Context, contactID string, userID string) (*model.Contact, error)
	DeleteContact(ctx context.Context, contactID string, userID string) error
}

// ConversionService moves records between pipeline stages: lead to
// deal, deal back to lead, contact to lead. A conversion inserts the
// target record first and deletes the source second; if the source
// delete fails the inserted target is removed again so the two
// collections never hold both sides of a finished conversion.
type ConversionService struct {
	Leads    LeadStore
	Deals    DealStore
	Contacts ContactStore
}

// ConvertLeadToDeal promotes a lead into a discovery-stage deal and
// removes the lead. The new deal inherits the lead's machines,
// quotations and contact details; its value is the sum of machine
// prices and its close date lands one month out.
func (s *ConversionService) ConvertLeadToDeal(ctx context.Context, leadID string, userID string) (*model.Deal, error) {
	lead, err := s.Leads.GetLead(ctx, leadID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	closeDate := now.AddDate(0, 1, 0)
	deal := &model.Deal{
		DealID:       uuid.New().String(),
		UserID:       userID,
		Title:        fmt.Sprintf("Venta - %s", lead.Name),
		Client:       lead.Name,
		Contact:      lead.Contact,
		ContactEmail: lead.Email,
		ContactPhone: lead.Phone,
		Value:        lead.Value(),
		Stage:        model.StageDiscovery,
		Probability:  40,
		CloseDate:    &closeDate,
		Description:  dealDescription(lead),
		Machines:     lead.Machines,
		Quotations:   lead.Quotations,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Deals.CreateDeal(ctx, deal); err != nil {
		utils.TrackConversion("lead_to_deal", "failure")
		return nil, err
	}
	if err := s.Leads.DeleteLead(ctx, leadID, userID); err != nil {
		// Undo the insert so the record does not exist on both boards.
		if cleanupErr := s.Deals.DeleteDeal(ctx, deal.DealID, userID); cleanupErr != nil {
			utils.TrackConversion("lead_to_deal", "failure")
			return nil, fmt.Errorf("failed to remove lead (%v) and to undo created deal: %w", err, cleanupErr)
		}
		utils.TrackConversion("lead_to_deal", "failure")
		return nil, fmt.Errorf("failed to remove converted lead: %w", err)
	}

	utils.TrackConversion("lead_to_deal", "success")
	return deal, nil
}

func dealDescription(lead *model.Lead) string {
	parts := make([]string, 0, 2)
	if lead.Notes != "" {
		parts = append(parts, lead.Notes)
	}
	if len(lead.Machines) > 0 {
		names := make([]string, len(lead.Machines))
		for i, m := range lead.Machines {
			names[i] = m.Name
		}
		parts = append(parts, "Machines: "+strings.Join(names, ", "))
	}
	return strings.Join(parts, "\n")
}

// RevertDealToLead sends a deal back to the lead board as a warm lead
// and removes the deal. The revert keeps the deal's line items and
// quotations and annotates the lead with where it came from.
func (s *ConversionService) RevertDealToLead(ctx context.Context, dealID string, userID string) (*model.Lead, error) {
	deal, err := s.Deals.GetDeal(ctx, dealID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lead := &model.Lead{
		LeadID:         uuid.New().String(),
		UserID:         userID,
		Name:           deal.Client,
		Contact:        deal.Contact,
		Email:          deal.ContactEmail,
		Phone:          deal.ContactPhone,
		Status:         model.LeadStatusWarm,
		Score:          70,
		Source:         "Reverted from Deal",
		Machines:       deal.Machines,
		Quotations:     deal.Quotations,
		Notes:          fmt.Sprintf("Reverted from deal %q (value $%.2f). %s", deal.Title, deal.Value, deal.Description),
		NextStep:       &model.NextStep{Type: "Re-engage"},
		ActivityStatus: model.NewActivityStatus(len(deal.Quotations) > 0, now),
		LastActivity:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if lead.Name == "" {
		lead.Name = deal.Title
	}

	if err := s.Leads.CreateLead(ctx, lead); err != nil {
		utils.TrackConversion("deal_to_lead", "failure")
		return nil, err
	}
	if err := s.Deals.DeleteDeal(ctx, dealID, userID); err != nil {
		if cleanupErr := s.Leads.DeleteLead(ctx, lead.LeadID, userID); cleanupErr != nil {
			utils.TrackConversion("deal_to_lead", "failure")
			return nil, fmt.Errorf("failed to remove deal (%v) and to undo created lead: %w", err, cleanupErr)
		}
		utils.TrackConversion("deal_to_lead", "failure")
		return nil, fmt.Errorf("failed to remove reverted deal: %w", err)
	}

	utils.TrackConversion("deal_to_lead", "success")
	return lead, nil
}

// ConvertContactToLead promotes an address-book contact into a new
// lead and removes the contact.
func (s *ConversionService) ConvertContactToLead(ctx context.Context, contactID string, userID string) (*model.Lead, error) {
	if s.Contacts == nil {
		return nil, errors.New("contact store not configured")
	}
	contact, err := s.Contacts.GetContact(ctx, contactID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	name := contact.Company
	if name == "" {
		name = contact.Name
	}
	var notes string
	if contact.Position != "" {
		notes = fmt.Sprintf("Converted from contact %s (%s).", contact.Name, contact.Position)
	}
	lead := &model.Lead{
		LeadID:         uuid.New().String(),
		UserID:         userID,
		Name:           name,
		Contact:        contact.Name,
		Position:       contact.Position,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Status:         model.LeadStatusNew,
		Score:          50,
		Source:         "Converted from Contact",
		Machines:       contact.Machines,
		Quotations:     contact.Quotations,
		Notes:          notes,
		NextStep:       &model.NextStep{Type: "Send Quotation"},
		ActivityStatus: model.NewActivityStatus(len(contact.Quotations) > 0, now),
		LastActivity:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Leads.CreateLead(ctx, lead); err != nil {
		utils.TrackConversion("contact_to_lead", "failure")
		return nil, err
	}
	if err := s.Contacts.DeleteContact(ctx, contactID, userID); err != nil {
		if cleanupErr := s.Leads.DeleteLead(ctx, lead.LeadID, userID); cleanupErr != nil {
			utils.TrackConversion("contact_to_lead", "failure")
			return nil, fmt.Errorf("failed to remove contact (%v) and to undo created lead: %w", err, cleanupErr)
		}
		utils.TrackConversion("contact_to_lead", "failure")
		return nil, fmt.Errorf("failed to remove converted contact: %w", err)
	}

	utils.TrackConversion("contact_to_lead", "success")
	return lead, nil
}
