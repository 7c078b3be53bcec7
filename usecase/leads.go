package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"dealflow/model"
	"dealflow/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// LeadStore is the persistence surface LeadService needs. Satisfied by
// repository.LeadsRepo.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	GetUserLeads(ctx context.Context, userID string) ([]*model.Lead, error)
	GetLead(ctx context.Context, leadID string, userID string) (*model.Lead, error)
	UpdateLead(ctx context.Context, leadID string, userID string, updates bson.M) error
	DeleteLead(ctx context.Context, leadID string, userID string) error
}

// FollowUpStore upserts the single task linked to a lead. Satisfied by
// repository.TasksRepo.
type FollowUpStore interface {
	UpsertFollowUp(ctx context.Context, task *model.Task) error
}

type LeadService struct {
	Leads LeadStore
	Tasks FollowUpStore
}

// LeadSearchOptions narrows a user's lead listing.
type LeadSearchOptions struct {
	Query  string
	Status model.LeadStatus
}

func (s *LeadService) validateLead(lead *model.Lead) error {
	lead.Name = strings.TrimSpace(lead.Name)
	if lead.Name == "" {
		return errors.New("lead name is required")
	}
	if lead.Status != "" && !model.ValidLeadStatus(lead.Status) {
		return fmt.Errorf("invalid lead status: %s", lead.Status)
	}
	if lead.Score < 0 || lead.Score > 100 {
		return errors.New("lead score must be between 0 and 100")
	}
	for _, machine := range lead.Machines {
		if machine.Price < 0 || machine.Commission < 0 {
			return errors.New("machine price and commission cannot be negative")
		}
	}
	return nil
}

// CreateLead fills in new-lead defaults and persists the record.
func (s *LeadService) CreateLead(ctx context.Context, lead *model.Lead) error {
	if lead.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := s.validateLead(lead); err != nil {
		return err
	}

	now := time.Now()
	lead.LeadID = uuid.New().String()
	if lead.Status == "" {
		lead.Status = model.LeadStatusNew
	}
	if lead.Score == 0 {
		lead.Score = 50
	}
	if lead.Source == "" {
		lead.Source = "Manual Entry"
	}
	if lead.ActivityStatus == nil {
		lead.ActivityStatus = model.NewActivityStatus(len(lead.Quotations) > 0, now)
	}
	if lead.NextStep == nil {
		lead.NextStep = &model.NextStep{Type: "Send Quotation"}
	}
	lead.CreatedAt = now
	lead.UpdatedAt = now
	lead.LastActivity = now

	if err := s.Leads.CreateLead(ctx, lead); err != nil {
		return err
	}
	utils.TrackCRMOperation("leads", "create")
	return nil
}

// SearchLeads lists the user's leads narrowed by the given options.
func (s *LeadService) SearchLeads(ctx context.Context, userID string, opts LeadSearchOptions) ([]*model.Lead, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	leads, err := s.Leads.GetUserLeads(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterLeads(leads, opts.Query, opts.Status), nil
}

// UpdateLead applies a partial update after validating any status or
// score it carries.
func (s *LeadService) UpdateLead(ctx context.Context, leadID string, userID string, updates bson.M) error {
	if status, ok := updates["status"]; ok {
		if !model.ValidLeadStatus(model.LeadStatus(fmt.Sprint(status))) {
			return fmt.Errorf("invalid lead status: %v", status)
		}
	}
	if score, ok := updates["score"]; ok {
		if n, isInt := score.(int); isInt && (n < 0 || n > 100) {
			return errors.New("lead score must be between 0 and 100")
		}
	}

	if err := s.Leads.UpdateLead(ctx, leadID, userID, updates); err != nil {
		return err
	}
	utils.TrackCRMOperation("leads", "update")
	return nil
}

// ChangeStatus moves the lead to a new temperature and re-scores it
// inside the status band.
func (s *LeadService) ChangeStatus(ctx context.Context, leadID string, userID string, status model.LeadStatus) (int, error) {
	if !model.ValidLeadStatus(status) {
		return 0, fmt.Errorf("invalid lead status: %s", status)
	}

	score := ScoreForStatus(status)
	err := s.Leads.UpdateLead(ctx, leadID, userID, bson.M{"status": status, "score": score})
	if err != nil {
		return 0, err
	}
	utils.TrackCRMOperation("leads", "status_change")
	return score, nil
}

// ScoreForStatus picks a score inside the band conventionally assigned
// to each temperature: hot 85-99, warm 60-84, cold 30-59, new 50.
func ScoreForStatus(status model.LeadStatus) int {
	switch status {
	case model.LeadStatusHot:
		return 85 + rand.Intn(15)
	case model.LeadStatusWarm:
		return 60 + rand.Intn(25)
	case model.LeadStatusCold:
		return 30 + rand.Intn(30)
	default:
		return 50
	}
}

// ScheduleFollowUp links a follow-up task to the lead (replacing any
// existing one) and records the lead's next step. The unique follow-up
// index keeps schedule calls idempotent per lead.
func (s *LeadService) ScheduleFollowUp(ctx context.Context, userID string, leadID string, actionType string, due time.Time) (*model.Task, error) {
	actionType = strings.TrimSpace(actionType)
	if actionType == "" {
		return nil, errors.New("follow-up action type is required")
	}

	lead, err := s.Leads.GetLead(ctx, leadID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &model.Task{
		TaskID:    uuid.New().String(),
		UserID:    userID,
		Title:     fmt.Sprintf("%s with %s", actionType, lead.Name),
		Due:       due,
		Client:    lead.Name,
		Priority:  model.PriorityMedium,
		LeadID:    lead.LeadID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Tasks.UpsertFollowUp(ctx, task); err != nil {
		return nil, err
	}

	next := &model.NextStep{Type: actionType, Date: &due}
	if err := s.Leads.UpdateLead(ctx, leadID, userID, bson.M{"next_step": next, "follow_up_date": due}); err != nil {
		return nil, err
	}

	utils.TrackCRMOperation("leads", "follow_up")
	return task, nil
}

// DeleteLead removes a lead owned by the user.
func (s *LeadService) DeleteLead(ctx context.Context, leadID string, userID string) error {
	if err := s.Leads.DeleteLead(ctx, leadID, userID); err != nil {
		return err
	}
	utils.TrackCRMOperation("leads", "delete")
	return nil
}
