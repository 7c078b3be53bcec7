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
	"go.mongodb.org/mongo-driver/bson"
)

// DealBoardStore extends DealStore with the listing and update calls
// the pipeline board needs. Satisfied by repository.DealsRepo.
type DealBoardStore interface {
	DealStore
	GetUserDeals(ctx context.Context, userID string) ([]*model.Deal, error)
	UpdateDeal(ctx context.Context, dealID string, userID string, updates bson.M) error
}

type DealService struct {
	Deals DealBoardStore
}

func (s *DealService) validateDeal(deal *model.Deal) error {
	deal.Title = strings.TrimSpace(deal.Title)
	if deal.Title == "" {
		return errors.New("deal title is required")
	}
	if deal.Stage != "" && !model.ValidDealStage(deal.Stage) {
		return fmt.Errorf("invalid deal stage: %s", deal.Stage)
	}
	if deal.Probability < 0 || deal.Probability > 100 {
		return errors.New("deal probability must be between 0 and 100")
	}
	if deal.Value < 0 {
		return errors.New("deal value cannot be negative")
	}
	return nil
}

// CreateDeal persists a new deal with discovery-stage defaults.
func (s *DealService) CreateDeal(ctx context.Context, deal *model.Deal) error {
	if deal.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := s.validateDeal(deal); err != nil {
		return err
	}

	now := time.Now()
	deal.DealID = uuid.New().String()
	if deal.Stage == "" {
		deal.Stage = model.StageDiscovery
	}
	if deal.Probability == 0 {
		deal.Probability = 40
	}
	if deal.Value == 0 && len(deal.Machines) > 0 {
		for _, m := range deal.Machines {
			deal.Value += m.Price
		}
	}
	deal.CreatedAt = now
	deal.UpdatedAt = now
	deal.LastActivity = now

	if err := s.Deals.CreateDeal(ctx, deal); err != nil {
		return err
	}
	utils.TrackCRMOperation("deals", "create")
	return nil
}

// Board returns the user's pipeline grouped into stage columns.
func (s *DealService) Board(ctx context.Context, userID string) (map[model.DealStage][]*model.Deal, error) {
	deals, err := s.Deals.GetUserDeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DealsByStage(deals), nil
}

// UpdateDeal applies a partial update after validating any stage or
// probability it carries.
func (s *DealService) UpdateDeal(ctx context.Context, dealID string, userID string, updates bson.M) error {
	if stage, ok := updates["stage"]; ok {
		if !model.ValidDealStage(model.DealStage(fmt.Sprint(stage))) {
			return fmt.Errorf("invalid deal stage: %v", stage)
		}
	}
	if probability, ok := updates["probability"]; ok {
		if n, isInt := probability.(int); isInt && (n < 0 || n > 100) {
			return errors.New("deal probability must be between 0 and 100")
		}
	}

	if err := s.Deals.UpdateDeal(ctx, dealID, userID, updates); err != nil {
		return err
	}
	utils.TrackCRMOperation("deals", "update")
	return nil
}

// MoveStage drags a deal to another pipeline column.
func (s *DealService) MoveStage(ctx context.Context, dealID string, userID string, stage model.DealStage) error {
	if !model.ValidDealStage(stage) {
		return fmt.Errorf("invalid deal stage: %s", stage)
	}
	if err := s.Deals.UpdateDeal(ctx, dealID, userID, bson.M{"stage": stage}); err != nil {
		return err
	}
	utils.TrackCRMOperation("deals", "stage_change")
	return nil
}

// SetClosingStep checks or unchecks one item of the deal's closing
// checklist, stamping the toggle time when checking.
func (s *DealService) SetClosingStep(ctx context.Context, dealID string, userID string, step string, checked bool) error {
	switch step {
	case model.ClosingContractReview, model.ClosingWaitingPO, model.ClosingPOReceived, model.ClosingDepositReceived:
	default:
		return fmt.Errorf("unknown closing step: %s", step)
	}

	entry := model.ActivityStep{Checked: checked}
	if checked {
		now := time.Now()
		entry.Date = &now
	}
	key := fmt.Sprintf("closing_status.%s", step)
	if err := s.Deals.UpdateDeal(ctx, dealID, userID, bson.M{key: entry}); err != nil {
		return err
	}
	utils.TrackCRMOperation("deals", "closing_step")
	return nil
}

// SetClientFile replaces the deal's onboarding dossier after checking
// that the payment split adds up.
func (s *DealService) SetClientFile(ctx context.Context, dealID string, userID string, file *model.ClientFile) error {
	if file == nil {
		return errors.New("client file is required")
	}
	sc := file.SalesConditions
	for _, pct := range []int{sc.AdvancePercentage, sc.SecondPercentage, sc.ThirdPercentage} {
		if pct < 0 || pct > 100 {
			return errors.New("sales condition percentages must be between 0 and 100")
		}
	}
	if total := sc.AdvancePercentage + sc.SecondPercentage + sc.ThirdPercentage; total != 0 && total != 100 {
		return fmt.Errorf("sales condition percentages must add up to 100, got %d", total)
	}

	if err := s.Deals.UpdateDeal(ctx, dealID, userID, bson.M{"client_file": file}); err != nil {
		return err
	}
	utils.TrackCRMOperation("deals", "client_file")
	return nil
}

// DeleteDeal removes a deal owned by the user.
func (s *DealService) DeleteDeal(ctx context.Context, dealID string, userID string) error {
	if err := s.Deals.DeleteDeal(ctx, dealID, userID); err != nil {
		return err
	}
	utils.TrackCRMOperation("deals", "delete")
	return nil
}
