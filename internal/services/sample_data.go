package services

import (
	"math/rand/v2"
	"time"

	"alfredoptarigan/job-tracker/internal/models"
)

var (
	sampleRoles = []string{
		"Backend Engineer", "Frontend Engineer", "Full Stack Developer", "Platform Engineer",
		"Site Reliability Engineer", "Data Engineer", "Mobile Developer", "Engineering Manager",
	}
	sampleCompanies = []string{
		"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries",
		"Wayne Enterprises", "Pied Piper", "Soylent", "Vandelay Industries",
	}
	sampleTags = []string{
		"remote", "hybrid", "onsite", "referral", "startup", "enterprise", "contract", "go", "react",
	}
)

// GenerateSampleApplications builds n records spread over the 60 days before
// now, flagged as sample data. A nil rng is seeded from now.
func GenerateSampleApplications(n int, now time.Time, rng *rand.Rand) []models.Application {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(n)))
	}

	apps := make([]models.Application, 0, n)
	for i := 0; i < n; i++ {
		appliedAt := now.Add(-time.Duration(rng.IntN(60*24)) * time.Hour)
		status := models.Statuses[rng.IntN(len(models.Statuses))]
		updatedAt := appliedAt.Add(time.Duration(rng.IntN(int(now.Sub(appliedAt)/time.Hour)+1)) * time.Hour)

		app := models.Application{
			Role:       sampleRoles[rng.IntN(len(sampleRoles))],
			Company:    sampleCompanies[rng.IntN(len(sampleCompanies))],
			Status:     status,
			AppliedAt:  appliedAt,
			Tags:       pickTags(rng),
			IsFavorite: rng.IntN(5) == 0,
			IsSample:   true,
			CreatedAt:  appliedAt,
			UpdatedAt:  updatedAt,
		}

		switch status {
		case models.StatusInterviewing:
			app.InterviewDate = &updatedAt
		case models.StatusOffered:
			interview := appliedAt.Add(updatedAt.Sub(appliedAt) / 2)
			app.InterviewDate = &interview
			app.OfferDate = &updatedAt
		case models.StatusUnsuccessful:
			app.UnsuccessfulDate = &updatedAt
		}

		apps = append(apps, app)
	}

	return apps
}

func pickTags(rng *rand.Rand) []string {
	count := rng.IntN(3)
	tags := make([]string, 0, count)
	for _, i := range rng.Perm(len(sampleTags))[:count] {
		tags = append(tags, sampleTags[i])
	}
	return tags
}
