package usecase

import (
	"context"
	"time"

	"dealflow/model"
	"dealflow/repository"
)

// DashboardService aggregates the per-collection counters behind the
// dashboard cards. It reads straight from the repositories since every
// number is a server-side aggregate.
type DashboardService struct {
	Leads     *repository.LeadsRepo
	Deals     *repository.DealsRepo
	Tasks     *repository.TasksRepo
	Contacts  *repository.ContactsRepo
	Shipments *repository.ShipmentsRepo
	Users     *repository.UserRepo
	Sessions  *repository.SessionRepo
}

// Snapshot assembles the user's dashboard in one pass.
func (s *DashboardService) Snapshot(ctx context.Context, userID string) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	byStatus, err := s.Leads.CountLeadsByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.LeadStats.ByStatus = byStatus
	for _, n := range byStatus {
		stats.LeadStats.Total += n
	}

	leads, err := s.Leads.GetUserLeads(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.LeadStats.PossibleSales = TotalPossibleSales(leads)

	byStage, err := s.Deals.PipelineByStage(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.PipelineStats.ByStage = byStage
	for _, col := range byStage {
		stats.PipelineStats.Total += col.Count
	}

	tasks, err := s.Tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TaskStats = ComputeTaskStats(tasks, time.Now())

	if stats.ContactCount, err = s.Contacts.CountUserContacts(ctx, userID); err != nil {
		return nil, err
	}
	if stats.ShipmentCount, err = s.Shipments.CountUserShipments(ctx, userID); err != nil {
		return nil, err
	}

	if user, err := s.Users.FindUser(ctx, userID); err == nil && user != nil {
		stats.ActivityStats.AccountCreated = user.CreatedAt
	}
	if sessions, err := s.Sessions.GetUserActiveSessions(userID); err == nil {
		stats.ActivityStats.TotalSessions = len(sessions)
		for _, sess := range sessions {
			if sess.LastActivityAt.After(stats.ActivityStats.LastActive) {
				stats.ActivityStats.LastActive = sess.LastActivityAt
			}
		}
	}

	return stats, nil
}
