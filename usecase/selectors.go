package usecase

import (
	"sort"
	"strings"
	"time"

	"dealflow/model"
)

// Pure selectors over in-memory collections. Every list view derives from
// these so filter and sort behavior stays identical across pages, and
// testable without a database.

// FilterLeads narrows leads by a case-insensitive substring match on
// name, contact or email, and by an exact status. An empty query or an
// empty/"all" status matches everything. Order is preserved.
func FilterLeads(leads []*model.Lead, query string, status model.LeadStatus) []*model.Lead {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]*model.Lead, 0, len(leads))
	for _, lead := range leads {
		if status != "" && status != "all" && lead.Status != status {
			continue
		}
		if query != "" && !matchesLead(lead, query) {
			continue
		}
		filtered = append(filtered, lead)
	}
	return filtered
}

func matchesLead(lead *model.Lead, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(lead.Name), loweredQuery) ||
		strings.Contains(strings.ToLower(lead.Contact), loweredQuery) ||
		strings.Contains(strings.ToLower(lead.Email), loweredQuery)
}

// TotalPossibleSales sums the quoted value of every lead in the slice.
func TotalPossibleSales(leads []*model.Lead) float64 {
	var total float64
	for _, lead := range leads {
		total += lead.Value()
	}
	return total
}

// DealsByStage groups deals into kanban columns, each column sorted by
// most recent activity.
func DealsByStage(deals []*model.Deal) map[model.DealStage][]*model.Deal {
	byStage := make(map[model.DealStage][]*model.Deal, len(model.Stages))
	for _, stage := range model.Stages {
		byStage[stage] = []*model.Deal{}
	}
	for _, deal := range deals {
		byStage[deal.Stage] = append(byStage[deal.Stage], deal)
	}
	for _, column := range byStage {
		sort.SliceStable(column, func(i, j int) bool {
			return column[i].LastActivity.After(column[j].LastActivity)
		})
	}
	return byStage
}

// TotalValueByStage sums deal values per pipeline stage.
func TotalValueByStage(deals []*model.Deal) map[model.DealStage]float64 {
	totals := make(map[model.DealStage]float64, len(model.Stages))
	for _, stage := range model.Stages {
		totals[stage] = 0
	}
	for _, deal := range deals {
		totals[deal.Stage] += deal.Value
	}
	return totals
}

// FilterContacts narrows contacts by a case-insensitive substring match
// on name, company or email.
func FilterContacts(contacts []*model.Contact, query string) []*model.Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return contacts
	}

	filtered := make([]*model.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), query) ||
			strings.Contains(strings.ToLower(contact.Company), query) ||
			strings.Contains(strings.ToLower(contact.Email), query) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// ComputeTaskStats derives the agenda counters relative to now.
func ComputeTaskStats(tasks []*model.Task, now time.Time) model.TaskStats {
	var stats model.TaskStats
	stats.Total = len(tasks)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekEnd := dayStart.AddDate(0, 0, 7)

	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}

		switch task.Priority {
		case model.PriorityHigh:
			stats.HighPriority++
		case model.PriorityMedium:
			stats.MediumPriority++
		case model.PriorityLow:
			stats.LowPriority++
		}

		if task.Completed {
			continue
		}
		switch {
		case task.Due.Before(dayStart):
			stats.Overdue++
		case task.Due.Before(dayEnd):
			stats.DueToday++
		case task.Due.Before(weekEnd):
			stats.Upcoming++
		}
	}
	return stats
}
