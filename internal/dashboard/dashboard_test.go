package dashboard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bhai/internal/dashboard"
	"bhai/internal/models"
	"bhai/internal/storage"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string]string)} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func TestTrendsNoData(t *testing.T) {
	store := storage.NewStore(newFakeKV(), zap.NewNop())
	agg := dashboard.NewAggregator(store)

	trends := agg.Trends(context.Background(), "u1")
	require.False(t, trends.Mental.HasData())
	require.False(t, trends.Behavioral.HasData())
	require.Empty(t, trends.Mental.Points)
}

func TestTrendsMeanPerAssessment(t *testing.T) {
	store := storage.NewStore(newFakeKV(), zap.NewNop())
	agg := dashboard.NewAggregator(store)
	ctx := context.Background()

	store.SaveAssessment(ctx, models.Assessment{
		ID: "a1", UserID: "u1", Type: models.AssessmentMental,
		Answers:   map[string]int{"q1": 0, "q2": 3},
		Result:    "r",
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	trends := agg.Trends(ctx, "u1")
	require.True(t, trends.Mental.HasData())
	require.Len(t, trends.Mental.Points, 1)
	require.InDelta(t, 1.5, trends.Mental.Points[0].Score, 1e-9)

	// one mental assessment contributes nothing to the behavioral series
	require.False(t, trends.Behavioral.HasData())
}

func TestTrendsFullScenario(t *testing.T) {
	store := storage.NewStore(newFakeKV(), zap.NewNop())
	agg := dashboard.NewAggregator(store)
	ctx := context.Background()

	answers := map[string]int{
		"q1": 2, "q2": 3, "q3": 1, "q4": 0, "q5": 2,
		"q6": 1, "q7": 3, "q8": 2, "q9": 0, "q10": 1,
		"q11": 2, "q12": 0, "q13": 1, "q14": 3, "q15": 1,
	}
	sum := 0
	for _, v := range answers {
		sum += v
	}
	store.SaveAssessment(ctx, models.Assessment{
		ID: "a1", UserID: "u1", Type: models.AssessmentMental,
		Answers: answers, Result: "analysis", CreatedAt: time.Now(),
	})

	trends := agg.Trends(ctx, "u1")
	require.Len(t, trends.Mental.Points, 1)
	require.InDelta(t, float64(sum)/15.0, trends.Mental.Points[0].Score, 1e-9)
}

func TestLoadAssessmentsOrderedAndFiltered(t *testing.T) {
	store := storage.NewStore(newFakeKV(), zap.NewNop())
	agg := dashboard.NewAggregator(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// stored out of chronological order, and with a foreign user mixed in
	store.SaveAssessment(ctx, models.Assessment{ID: "late", UserID: "u1", Type: models.AssessmentMental, Answers: map[string]int{"q1": 1}, CreatedAt: base.AddDate(0, 0, 2)})
	store.SaveAssessment(ctx, models.Assessment{ID: "other", UserID: "u2", Type: models.AssessmentMental, Answers: map[string]int{"q1": 1}, CreatedAt: base})
	store.SaveAssessment(ctx, models.Assessment{ID: "early", UserID: "u1", Type: models.AssessmentBehavioral, Answers: map[string]int{"b1": 2}, CreatedAt: base.AddDate(0, 0, 1)})

	got := agg.LoadAssessments(ctx, "u1")
	require.Len(t, got, 2)
	require.Equal(t, "early", got[0].ID)
	require.Equal(t, "late", got[1].ID)
}
