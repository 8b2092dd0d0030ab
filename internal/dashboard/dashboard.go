package dashboard

import (
	"context"
	"sort"
	"time"

	"bhai/internal/models"
	"bhai/internal/storage"
)

// TrendPoint is one assessment reduced to a scalar: the arithmetic mean of
// its answer codes.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// Series is the per-type trend. Empty means "no data", never a zero point.
type Series struct {
	Points []TrendPoint `json:"points"`
}

func (s Series) HasData() bool { return len(s.Points) > 0 }

type Trends struct {
	Mental     Series `json:"mental"`
	Behavioral Series `json:"behavioral"`
}

// Aggregator derives dashboard views from stored assessments. There is no
// caching here: every call re-reads and re-filters.
type Aggregator struct {
	store *storage.Store
}

func NewAggregator(store *storage.Store) *Aggregator {
	return &Aggregator{store: store}
}

// LoadAssessments returns the user's assessments ordered by creation time
// ascending.
func (a *Aggregator) LoadAssessments(ctx context.Context, userID string) []models.Assessment {
	assessments := a.store.AssessmentsForUser(ctx, userID)
	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.Before(assessments[j].CreatedAt)
	})
	return assessments
}

func (a *Aggregator) Trends(ctx context.Context, userID string) Trends {
	all := a.LoadAssessments(ctx, userID)
	return Trends{
		Mental:     seriesOf(all, models.AssessmentMental),
		Behavioral: seriesOf(all, models.AssessmentBehavioral),
	}
}

func seriesOf(assessments []models.Assessment, typ models.AssessmentType) Series {
	var s Series
	for _, a := range assessments {
		if a.Type != typ || len(a.Answers) == 0 {
			continue
		}
		sum := 0
		for _, code := range a.Answers {
			sum += code
		}
		s.Points = append(s.Points, TrendPoint{
			Date:  a.CreatedAt,
			Score: float64(sum) / float64(len(a.Answers)),
		})
	}
	return s
}
