package services

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

const (
	stageAppliedToInterviewing = "Applied to Interviewing"
	stageInterviewingToOffered = "Interviewing to Offered"
)

type MetricsService interface {
	ForOwner(ownerID uuid.UUID) (*models.Metrics, error)
}

type metricsService struct {
	appRepo repositories.ApplicationRepository
}

func NewMetricsService(appRepo repositories.ApplicationRepository) MetricsService {
	return &metricsService{appRepo: appRepo}
}

func (s *metricsService) ForOwner(ownerID uuid.UUID) (*models.Metrics, error) {
	apps, err := s.appRepo.ListByOwner(ownerID, "")
	if err != nil {
		return nil, err
	}
	metrics := ComputeMetrics(apps)
	return &metrics, nil
}

// ComputeMetrics aggregates the dashboard figures. Status counts follow board
// order, per-day counts are chronological and the rest are sorted by count.
func ComputeMetrics(apps []models.Application) models.Metrics {
	statusCounts := make(map[string]int)
	tagCounts := make(map[string]int)
	roleCounts := make(map[string]int)
	dayCounts := make(map[string]int)
	var totalDays float64

	for _, app := range apps {
		statusCounts[string(app.Status)]++
		roleCounts[app.Role]++
		dayCounts[app.AppliedAt.Format("2006-01-02")]++
		for _, tag := range app.Tags {
			tagCounts[tag]++
		}
		totalDays += app.UpdatedAt.Sub(app.AppliedAt).Hours() / 24
	}

	byStatus := make([]models.NameCount, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		if count := statusCounts[string(status)]; count > 0 {
			byStatus = append(byStatus, models.NameCount{Name: string(status), Count: count})
		}
	}

	perDay := toNameCounts(dayCounts)
	sort.Slice(perDay, func(i, j int) bool { return perDay[i].Name < perDay[j].Name })

	average := 0.0
	if len(apps) > 0 {
		average = math.Round(totalDays/float64(len(apps))*100) / 100
	}

	return models.Metrics{
		Total:    len(apps),
		ByStatus: byStatus,
		ByTag:    sortedByCount(tagCounts),
		ByRole:   sortedByCount(roleCounts),
		PerDay:   perDay,
		StageConversions: []models.NameCount{
			{Name: stageAppliedToInterviewing, Count: statusCounts[string(models.StatusInterviewing)]},
			{Name: stageInterviewingToOffered, Count: statusCounts[string(models.StatusOffered)]},
		},
		AverageDaysToUpdate: average,
	}
}

func toNameCounts(counts map[string]int) []models.NameCount {
	out := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.NameCount{Name: name, Count: count})
	}
	return out
}

func sortedByCount(counts map[string]int) []models.NameCount {
	out := toNameCounts(counts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
