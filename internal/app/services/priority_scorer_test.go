package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelhub/internal/app/models"
)

func fixedScorer(now time.Time) *PriorityScorer {
	return &PriorityScorer{now: func() time.Time { return now }}
}

func TestPriorityScorerScore(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("combined components", func(t *testing.T) {
		scorer := fixedScorer(now)
		app := &models.AllotmentApplication{
			PerformanceType:  "sgpa",
			PerformanceValue: 8.5,
			DistanceFromHome: "25-50km",
			AcademicYear:     4,
			CreatedAt:        now.AddDate(0, 0, -14),
		}

		score, waitingDays := scorer.Score(app)
		// 42.5 gpa + 10 distance + 14 waiting + 5 seniority
		assert.Equal(t, 71.5, score)
		assert.Equal(t, 14, waitingDays)
		assert.Equal(t, "High", scorer.Label(score))
	})

	t.Run("gpa clamped to scale", func(t *testing.T) {
		scorer := fixedScorer(now)
		score, _ := scorer.Score(&models.AllotmentApplication{
			PerformanceType:  "cgpa",
			PerformanceValue: 12.0,
			CreatedAt:        now,
		})
		assert.Equal(t, 50.0, score)

		score, _ = scorer.Score(&models.AllotmentApplication{
			PerformanceType:  "cgpa",
			PerformanceValue: -3.0,
			CreatedAt:        now,
		})
		assert.Equal(t, 0.0, score)
	})

	t.Run("rank maps inversely", func(t *testing.T) {
		scorer := fixedScorer(now)

		score, _ := scorer.Score(&models.AllotmentApplication{
			PerformanceType:  "keam_rank",
			PerformanceValue: 0,
			CreatedAt:        now,
		})
		assert.Equal(t, 40.0, score)

		score, _ = scorer.Score(&models.AllotmentApplication{
			PerformanceType:  "keam_rank",
			PerformanceValue: 12500,
			CreatedAt:        now,
		})
		assert.Equal(t, 30.0, score)

		// Ranks past the cap contribute nothing
		score, _ = scorer.Score(&models.AllotmentApplication{
			PerformanceType:  "keam_rank",
			PerformanceValue: 80000,
			CreatedAt:        now,
		})
		assert.Equal(t, 0.0, score)
	})

	t.Run("distance bands are case insensitive", func(t *testing.T) {
		scorer := fixedScorer(now)

		score, _ := scorer.Score(&models.AllotmentApplication{
			DistanceFromHome: ">50 km",
			CreatedAt:        now,
		})
		assert.Equal(t, 20.0, score)

		score, _ = scorer.Score(&models.AllotmentApplication{
			DistanceFromHome: "25-50KM",
			CreatedAt:        now,
		})
		assert.Equal(t, 10.0, score)

		score, _ = scorer.Score(&models.AllotmentApplication{
			DistanceFromHome: "under 10km",
			CreatedAt:        now,
		})
		assert.Equal(t, 0.0, score)
	})

	t.Run("waiting days capped at 30", func(t *testing.T) {
		scorer := fixedScorer(now)
		score, waitingDays := scorer.Score(&models.AllotmentApplication{
			CreatedAt: now.AddDate(0, 0, -90),
		})
		assert.Equal(t, 30.0, score)
		assert.Equal(t, 90, waitingDays)
	})

	t.Run("future created_at does not go negative", func(t *testing.T) {
		scorer := fixedScorer(now)
		score, waitingDays := scorer.Score(&models.AllotmentApplication{
			CreatedAt: now.Add(48 * time.Hour),
		})
		assert.Equal(t, 0.0, score)
		assert.Equal(t, 0, waitingDays)
	})

	t.Run("unknown performance type scores nothing for academics", func(t *testing.T) {
		scorer := fixedScorer(now)
		score, _ := scorer.Score(&models.AllotmentApplication{
			PerformanceType:  "percentile",
			PerformanceValue: 99,
			CreatedAt:        now,
		})
		assert.Equal(t, 0.0, score)
	})
}

func TestPriorityScorerLabel(t *testing.T) {
	scorer := NewPriorityScorer()

	assert.Equal(t, "High", scorer.Label(50))
	assert.Equal(t, "High", scorer.Label(71.5))
	assert.Equal(t, "Medium", scorer.Label(49.99))
	assert.Equal(t, "Medium", scorer.Label(25))
	assert.Equal(t, "Low", scorer.Label(24.99))
	assert.Equal(t, "Low", scorer.Label(0))
}

func TestPriorityScorerScoreAll(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	older := &models.AllotmentApplication{
		ID:               1,
		PerformanceType:  "cgpa",
		PerformanceValue: 6.0,
		CreatedAt:        now.AddDate(0, 0, -10),
	}
	// Same score as older but submitted later
	newer := &models.AllotmentApplication{
		ID:               2,
		PerformanceType:  "cgpa",
		PerformanceValue: 6.0,
		CreatedAt:        now.AddDate(0, 0, -10).Add(time.Hour),
	}
	top := &models.AllotmentApplication{
		ID:               3,
		PerformanceType:  "cgpa",
		PerformanceValue: 9.5,
		DistanceFromHome: ">50km",
		CreatedAt:        now,
	}

	scored := scorer.ScoreAll([]*models.AllotmentApplication{newer, top, older})
	require.Len(t, scored, 3)

	assert.Equal(t, int64(3), scored[0].Application.ID)
	assert.Equal(t, int64(1), scored[1].Application.ID, "ties go to the older submission")
	assert.Equal(t, int64(2), scored[2].Application.ID)

	for _, entry := range scored {
		assert.Equal(t, scorer.Label(entry.Score), entry.Priority)
		assert.Equal(t, now, entry.ScoredAt)
	}
}
