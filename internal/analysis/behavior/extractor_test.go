package behavior

import (
	"errors"
	"testing"

	"github.com/campuswell/stresslens/internal/models"
	"github.com/campuswell/stresslens/internal/validation"
)

func TestAllZeroRecord(t *testing.T) {
	e := NewExtractor()

	signals, err := e.Analyze(models.ActivityRecord{}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if signals.ActivityScore != 0.0 {
		t.Errorf("activity score = %f, want 0", signals.ActivityScore)
	}
	if signals.RhythmChanges.LateNightRatio != 0.0 {
		t.Errorf("late night ratio = %f, want 0", signals.RhythmChanges.LateNightRatio)
	}
	if signals.RhythmChanges.WeekendRatio != 0.0 {
		t.Errorf("weekend ratio = %f, want 0", signals.RhythmChanges.WeekendRatio)
	}
	if signals.RhythmChanges.ConsistencyScore != 1.0 {
		t.Errorf("consistency score = %f, want 1", signals.RhythmChanges.ConsistencyScore)
	}
	if len(signals.AnomalyFlags) != 0 {
		t.Errorf("anomaly flags = %v, want none", signals.AnomalyFlags)
	}
	if signals.EngagementTrend != models.TrendStable {
		t.Errorf("trend = %s, want stable", signals.EngagementTrend)
	}
}

func TestInvalidTimeWindow(t *testing.T) {
	e := NewExtractor()

	for _, days := range []int{0, -1, 366} {
		_, err := e.Analyze(models.ActivityRecord{}, days)
		if err == nil {
			t.Errorf("window %d: expected error", days)
			continue
		}
		if !errors.Is(err, validation.ErrValidation) {
			t.Errorf("window %d: error %v is not a validation error", days, err)
		}
	}

	for _, days := range []int{1, 7, 365} {
		if _, err := e.Analyze(models.ActivityRecord{}, days); err != nil {
			t.Errorf("window %d: unexpected error %v", days, err)
		}
	}
}

func TestActivityScoreCapped(t *testing.T) {
	e := NewExtractor()

	rec := models.ActivityRecord{
		PostsCount:         1000,
		CommentsCount:      1000,
		ReactionsCount:     1000,
		MessagesCount:      1000,
		LoginFrequency:     1000,
		AvgSessionDuration: 10000,
	}
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.ActivityScore != 1.0 {
		t.Errorf("saturated activity score = %f, want 1", signals.ActivityScore)
	}
}

func TestActivityScoreWeighting(t *testing.T) {
	e := NewExtractor()

	// posts at cap, everything else zero: score is the posts weight
	rec := models.ActivityRecord{PostsCount: 10}
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.ActivityScore != 0.3 {
		t.Errorf("posts-only activity score = %f, want 0.3", signals.ActivityScore)
	}
}

func TestLateNightRatio(t *testing.T) {
	e := NewExtractor()

	var rec models.ActivityRecord
	rec.HourlyActivity[1] = 6  // late-night bucket
	rec.HourlyActivity[14] = 4 // daytime

	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.RhythmChanges.LateNightRatio != 0.6 {
		t.Errorf("late night ratio = %f, want 0.6", signals.RhythmChanges.LateNightRatio)
	}

	found := false
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagExcessiveLateNight {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s flag, got %v", models.FlagExcessiveLateNight, signals.AnomalyFlags)
	}
}

func TestWeekendRatio(t *testing.T) {
	e := NewExtractor()

	var rec models.ActivityRecord
	rec.DailyActivity = [7]float64{2, 2, 2, 2, 2, 5, 5} // 10 weekday, 10 weekend

	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.RhythmChanges.WeekendRatio != 0.5 {
		t.Errorf("weekend ratio = %f, want 0.5", signals.RhythmChanges.WeekendRatio)
	}
}

func TestConsistencyScoreNegative(t *testing.T) {
	e := NewExtractor()

	// one huge spike: std far exceeds the mean, score goes negative and is
	// preserved rather than clamped
	var rec models.ActivityRecord
	rec.DailyActivity = [7]float64{0, 0, 0, 0, 0, 0, 70}

	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.RhythmChanges.ConsistencyScore >= 0 {
		t.Errorf("consistency score = %f, want negative for extreme irregularity",
			signals.RhythmChanges.ConsistencyScore)
	}
}

func TestConsistencyScoreUniform(t *testing.T) {
	e := NewExtractor()

	var rec models.ActivityRecord
	rec.DailyActivity = [7]float64{4, 4, 4, 4, 4, 4, 4}

	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.RhythmChanges.ConsistencyScore != 1.0 {
		t.Errorf("uniform consistency score = %f, want 1", signals.RhythmChanges.ConsistencyScore)
	}
}

func TestEngagementTrendScenario(t *testing.T) {
	e := NewExtractor()

	rec := models.ActivityRecord{RecentActivity: []float64{10, 10, 10, 1, 1, 1}}
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if signals.EngagementTrend != models.TrendDecreasing {
		t.Errorf("trend = %s, want decreasing", signals.EngagementTrend)
	}

	found := false
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagSuddenActivityDrop {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s flag, got %v", models.FlagSuddenActivityDrop, signals.AnomalyFlags)
	}
}

func TestEngagementTrendDefaults(t *testing.T) {
	e := NewExtractor()

	rec := models.ActivityRecord{RecentActivity: []float64{5, 50}}
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signals.EngagementTrend != models.TrendStable {
		t.Errorf("trend with <3 points = %s, want stable", signals.EngagementTrend)
	}

	rec = models.ActivityRecord{RecentActivity: []float64{1, 2, 3, 4, 5}}
	signals, _ = e.Analyze(rec, 7)
	if signals.EngagementTrend != models.TrendIncreasing {
		t.Errorf("trend = %s, want increasing", signals.EngagementTrend)
	}
}

func TestLowSocialInteraction(t *testing.T) {
	e := NewExtractor()

	rec := models.ActivityRecord{PostsCount: 10} // no comments/messages/reactions
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagLowSocialInteraction {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s flag, got %v", models.FlagLowSocialInteraction, signals.AnomalyFlags)
	}

	// a small posting footprint never triggers the heuristic
	rec = models.ActivityRecord{PostsCount: 5}
	signals, _ = e.Analyze(rec, 7)
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagLowSocialInteraction {
			t.Errorf("flag fired with posts <= 5")
		}
	}
}

func TestPostingFrequencySpike(t *testing.T) {
	e := NewExtractor()

	rec := models.ActivityRecord{DailyPosts: []float64{1, 1, 1, 1, 10, 10, 10}}
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagPostingFrequencySpike {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s flag, got %v", models.FlagPostingFrequencySpike, signals.AnomalyFlags)
	}

	// fewer than 7 entries: heuristic stays silent
	rec = models.ActivityRecord{DailyPosts: []float64{1, 10, 10, 10}}
	signals, _ = e.Analyze(rec, 7)
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagPostingFrequencySpike {
			t.Errorf("flag fired with <7 daily_posts entries")
		}
	}
}

func TestSessionDurationFlags(t *testing.T) {
	e := NewExtractor()

	// baseline ~30min, recent ~90min: extended
	rec := models.ActivityRecord{SessionDurations: []float64{30, 30, 90, 90, 90}}
	signals, err := e.Analyze(rec, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFlag(t, signals.AnomalyFlags, models.FlagExtendedSessionDuration)

	// recent collapses below 30% of baseline: shortened
	rec = models.ActivityRecord{SessionDurations: []float64{60, 60, 5, 5, 5}}
	signals, _ = e.Analyze(rec, 7)
	wantFlag(t, signals.AnomalyFlags, models.FlagShortenedSessionDuration)

	// long recent sessions under the one-hour floor: no flag
	rec = models.ActivityRecord{SessionDurations: []float64{10, 10, 50, 50, 50}}
	signals, _ = e.Analyze(rec, 7)
	for _, flag := range signals.AnomalyFlags {
		if flag == models.FlagExtendedSessionDuration {
			t.Errorf("extended flag fired below the 60 minute floor")
		}
	}
}

func wantFlag(t *testing.T, flags []string, want string) {
	t.Helper()
	for _, flag := range flags {
		if flag == want {
			return
		}
	}
	t.Errorf("expected %s flag, got %v", want, flags)
}

func TestSelfTest(t *testing.T) {
	if err := NewExtractor().SelfTest(); err != nil {
		t.Errorf("self test failed: %v", err)
	}
}
