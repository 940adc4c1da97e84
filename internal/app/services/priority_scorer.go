package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
)

// PriorityScorer assigns pending applications a numeric triage score and a
// High/Medium/Low label for warden review ordering. Scoring is a pure
// function of the application record and the clock; it never touches storage.
type PriorityScorer struct {
	now func() time.Time
}

// NewPriorityScorer creates a scorer using the wall clock
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{now: time.Now}
}

// Score computes the priority score and waiting days for one application.
//
// Components:
//   - academic performance: GPA scaled to [0,50], or entrance rank mapped to
//     [0,40] with lower ranks scoring higher
//   - distance from home: >50km +20, 25-50km +10
//   - waiting time: one point per whole day pending, capped at 30
//   - seniority: academic year 4 or above +5
//
// The total is rounded to two decimal places.
func (s *PriorityScorer) Score(app *models.AllotmentApplication) (score float64, waitingDays int) {
	switch normalizePerformanceType(app.PerformanceType) {
	case "gpa":
		score += math.Min(10, math.Max(0, app.PerformanceValue)) * 5
	case "rank":
		capped := math.Min(50000, math.Max(0, app.PerformanceValue))
		score += math.Max(0, 40-capped/1250)
	}

	distance := strings.ToLower(app.DistanceFromHome)
	switch {
	case strings.Contains(distance, ">50"):
		score += 20
	case strings.Contains(distance, "25-50"):
		score += 10
	}

	days := int(math.Floor(s.now().Sub(app.CreatedAt).Hours() / 24))
	if days < 0 {
		days = 0
	}
	waitingDays = days
	score += math.Min(30, float64(days))

	if app.AcademicYear >= 4 {
		score += 5
	}

	return math.Round(score*100) / 100, waitingDays
}

// Label maps a score to its triage label
func (s *PriorityScorer) Label(score float64) string {
	switch {
	case score >= 50:
		return "High"
	case score >= 25:
		return "Medium"
	default:
		return "Low"
	}
}

// ScoreAll scores a batch of applications and orders them for triage:
// descending score, oldest submission first on ties.
func (s *PriorityScorer) ScoreAll(apps []*models.AllotmentApplication) []*dto.ScoredApplicationResponse {
	scoredAt := s.now()
	scored := make([]*dto.ScoredApplicationResponse, 0, len(apps))
	for _, app := range apps {
		score, waitingDays := s.Score(app)
		scored = append(scored, &dto.ScoredApplicationResponse{
			Application: app,
			Score:       score,
			Priority:    s.Label(score),
			WaitingDays: waitingDays,
			ScoredAt:    scoredAt,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Application.CreatedAt.Before(scored[j].Application.CreatedAt)
	})

	return scored
}

// normalizePerformanceType folds the accepted performance metric spellings
// into the two scoring branches. Historical records used "sgpa" and several
// rank variants; current submissions store keam_rank or cgpa.
func normalizePerformanceType(t models.PerformanceType) string {
	switch strings.ToLower(string(t)) {
	case "sgpa", "cgpa":
		return "gpa"
	case "rank", "keam_rank", "rank_keam":
		return "rank"
	default:
		return ""
	}
}
