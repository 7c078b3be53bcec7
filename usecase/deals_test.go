package usecase

import (
	"context"
	"testing"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeDealBoardStore struct {
	*fakeDealStore
}

func (f *fakeDealBoardStore) GetUserDeals(ctx context.Context, userID string) ([]*model.Deal, error) {
	var out []*model.Deal
	for _, deal := range f.deals {
		if deal.UserID == userID {
			out = append(out, deal)
		}
	}
	return out, nil
}

func (f *fakeDealBoardStore) UpdateDeal(ctx context.Context, dealID string, userID string, updates bson.M) error {
	deal, err := f.GetDeal(ctx, dealID, userID)
	if err != nil {
		return err
	}
	if stage, ok := updates["stage"]; ok {
		deal.Stage = stage.(model.DealStage)
	}
	if file, ok := updates["client_file"]; ok {
		deal.ClientFile = file.(*model.ClientFile)
	}
	return nil
}

func newBoardStore(deals ...*model.Deal) *fakeDealBoardStore {
	return &fakeDealBoardStore{fakeDealStore: newFakeDealStore(deals...)}
}

func TestCreateDealDefaults(t *testing.T) {
	store := newBoardStore()
	svc := &DealService{Deals: store}

	deal := &model.Deal{
		UserID:   "user-1",
		Title:    "Venta - Acme",
		Machines: []model.Machine{{Name: "Oven", Price: 10000}, {Name: "Mixer", Price: 2500}},
	}
	if err := svc.CreateDeal(context.Background(), deal); err != nil {
		t.Fatalf("CreateDeal() error = %v", err)
	}

	if deal.Stage != model.StageDiscovery {
		t.Errorf("default stage = %s, want discovery", deal.Stage)
	}
	if deal.Probability != 40 {
		t.Errorf("default probability = %d, want 40", deal.Probability)
	}
	if deal.Value != 12500 {
		t.Errorf("value = %v, want 12500 derived from machines", deal.Value)
	}
}

func TestCreateDealValidation(t *testing.T) {
	svc := &DealService{Deals: newBoardStore()}

	tests := []struct {
		name string
		deal *model.Deal
	}{
		{name: "blank title", deal: &model.Deal{UserID: "u", Title: " "}},
		{name: "bad stage", deal: &model.Deal{UserID: "u", Title: "Venta", Stage: "limbo"}},
		{name: "probability out of range", deal: &model.Deal{UserID: "u", Title: "Venta", Probability: 150}},
		{name: "negative value", deal: &model.Deal{UserID: "u", Title: "Venta", Value: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.CreateDeal(context.Background(), tt.deal); err == nil {
				t.Error("CreateDeal() accepted an invalid deal")
			}
		})
	}
}

func TestMoveStage(t *testing.T) {
	deal := &model.Deal{DealID: "deal-1", UserID: "user-1", Title: "Venta", Stage: model.StageDiscovery}
	store := newBoardStore(deal)
	svc := &DealService{Deals: store}

	if err := svc.MoveStage(context.Background(), "deal-1", "user-1", model.StageNegotiation); err != nil {
		t.Fatalf("MoveStage() error = %v", err)
	}
	if deal.Stage != model.StageNegotiation {
		t.Errorf("stage = %s, want negotiation", deal.Stage)
	}

	if err := svc.MoveStage(context.Background(), "deal-1", "user-1", "limbo"); err == nil {
		t.Error("MoveStage() accepted an unknown stage")
	}
}

func TestSetClosingStepRejectsUnknownKeys(t *testing.T) {
	deal := &model.Deal{DealID: "deal-1", UserID: "user-1", Title: "Venta"}
	svc := &DealService{Deals: newBoardStore(deal)}

	for _, step := range []string{
		model.ClosingContractReview,
		model.ClosingWaitingPO,
		model.ClosingPOReceived,
		model.ClosingDepositReceived,
	} {
		if err := svc.SetClosingStep(context.Background(), "deal-1", "user-1", step, true); err != nil {
			t.Errorf("SetClosingStep(%s) error = %v", step, err)
		}
	}

	if err := svc.SetClosingStep(context.Background(), "deal-1", "user-1", "handshake", true); err == nil {
		t.Error("SetClosingStep() accepted an unknown step")
	}
}

func TestSetClientFileValidatesPercentages(t *testing.T) {
	deal := &model.Deal{DealID: "deal-1", UserID: "user-1", Title: "Venta"}
	svc := &DealService{Deals: newBoardStore(deal)}

	valid := &model.ClientFile{
		TaxData: "ACM010101AB1",
		SalesConditions: model.SalesConditions{
			AdvancePercentage: 50,
			SecondPercentage:  30,
			ThirdPercentage:   20,
		},
	}
	if err := svc.SetClientFile(context.Background(), "deal-1", "user-1", valid); err != nil {
		t.Fatalf("SetClientFile() error = %v", err)
	}
	if deal.ClientFile == nil || deal.ClientFile.TaxData != "ACM010101AB1" {
		t.Error("client file not stored")
	}

	badSplit := &model.ClientFile{
		SalesConditions: model.SalesConditions{AdvancePercentage: 50, SecondPercentage: 30, ThirdPercentage: 30},
	}
	if err := svc.SetClientFile(context.Background(), "deal-1", "user-1", badSplit); err == nil {
		t.Error("SetClientFile() accepted a split that does not add up to 100")
	}

	outOfRange := &model.ClientFile{
		SalesConditions: model.SalesConditions{AdvancePercentage: 120, SecondPercentage: -20},
	}
	if err := svc.SetClientFile(context.Background(), "deal-1", "user-1", outOfRange); err == nil {
		t.Error("SetClientFile() accepted out-of-range percentages")
	}

	if err := svc.SetClientFile(context.Background(), "deal-1", "user-1", nil); err == nil {
		t.Error("SetClientFile() accepted a nil file")
	}
}
