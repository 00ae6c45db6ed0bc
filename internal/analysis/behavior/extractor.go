package behavior

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/campuswell/stresslens/internal/models"
	"github.com/campuswell/stresslens/internal/validation"
)

// Activity sub-metric weights and the caps each counter is normalized
// against before weighting.
var activityWeights = struct {
	posts, comments, reactions, messages, logins, session float64
}{0.30, 0.25, 0.15, 0.15, 0.10, 0.05}

const (
	maxPostsPerWindow     = 10.0
	maxCommentsPerWindow  = 20.0
	maxReactionsPerWindow = 50.0
	maxMessagesPerWindow  = 30.0
	maxLoginsPerWindow    = 7.0
	maxSessionMinutes     = 120.0
)

// Late-night hour buckets: 11 PM through 3 AM.
var lateNightHours = []int{23, 0, 1, 2, 3}

// Trend classification: a least-squares slope beyond this magnitude counts
// as a real change.
const trendSlopeThreshold = 0.1

// Extractor derives rhythm, trend and anomaly signals from aggregated
// activity counters. Stateless; safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Analyze computes behavior signals over the supplied record. windowDays
// must lie in [1,365]; anything else fails with a validation error.
func (e *Extractor) Analyze(rec models.ActivityRecord, windowDays int) (models.BehaviorSignals, error) {
	if err := validation.ValidateTimeWindow(windowDays); err != nil {
		return models.BehaviorSignals{}, err
	}

	return models.BehaviorSignals{
		ActivityScore:   e.activityScore(rec),
		RhythmChanges:   e.rhythmChanges(rec),
		EngagementTrend: e.engagementTrend(rec.RecentActivity),
		AnomalyFlags:    e.detectAnomalies(rec),
	}, nil
}

func (e *Extractor) activityScore(rec models.ActivityRecord) float64 {
	score := activityWeights.posts*capRatio(float64(rec.PostsCount), maxPostsPerWindow) +
		activityWeights.comments*capRatio(float64(rec.CommentsCount), maxCommentsPerWindow) +
		activityWeights.reactions*capRatio(float64(rec.ReactionsCount), maxReactionsPerWindow) +
		activityWeights.messages*capRatio(float64(rec.MessagesCount), maxMessagesPerWindow) +
		activityWeights.logins*capRatio(float64(rec.LoginFrequency), maxLoginsPerWindow) +
		activityWeights.session*capRatio(rec.AvgSessionDuration, maxSessionMinutes)

	return round3(clamp01(score))
}

func (e *Extractor) rhythmChanges(rec models.ActivityRecord) models.RhythmChanges {
	return models.RhythmChanges{
		LateNightRatio:   round3(lateNightRatio(rec.HourlyActivity)),
		WeekendRatio:     round3(weekendRatio(rec.DailyActivity)),
		ConsistencyScore: round3(consistencyScore(rec.DailyActivity)),
	}
}

func lateNightRatio(hourly [24]float64) float64 {
	var lateNight float64
	for _, hour := range lateNightHours {
		lateNight += hourly[hour]
	}

	var total float64
	for _, v := range hourly {
		total += v
	}
	// denominator floored at 1: an all-zero histogram yields 0, not NaN
	if total < 1 {
		total = 1
	}
	return lateNight / total
}

func weekendRatio(daily [7]float64) float64 {
	var weekday, weekend float64
	for day, v := range daily {
		if day >= 5 {
			weekend += v
		} else {
			weekday += v
		}
	}
	if weekday+weekend == 0 {
		return 0.0
	}
	return weekend / (weekday + weekend)
}

// consistencyScore is 1 minus the coefficient of variation of the daily
// buckets. Deliberately unclamped: negative values (std above mean) are a
// valid "highly irregular" signal. An all-zero week has no variation data
// and is treated as maximally consistent.
func consistencyScore(daily [7]float64) float64 {
	counts := daily[:]
	mean := stat.Mean(counts, nil)
	if mean <= 0 {
		return 1.0
	}
	return 1 - stat.PopStdDev(counts, nil)/mean
}

func (e *Extractor) engagementTrend(recent []float64) string {
	if len(recent) < 3 {
		return models.TrendStable
	}

	xs := make([]float64, len(recent))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, recent, nil, false)

	switch {
	case slope > trendSlopeThreshold:
		return models.TrendIncreasing
	case slope < -trendSlopeThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// detectAnomalies evaluates each heuristic independently; any subset may
// fire. Flags come back in fixed evaluation order.
func (e *Extractor) detectAnomalies(rec models.ActivityRecord) []string {
	flags := []string{}

	if len(rec.RecentActivity) >= 3 {
		recentAvg := stat.Mean(rec.RecentActivity[len(rec.RecentActivity)-3:], nil)
		overallAvg := stat.Mean(rec.RecentActivity, nil)
		if overallAvg > 0 && recentAvg < 0.3*overallAvg {
			flags = append(flags, models.FlagSuddenActivityDrop)
		}
	}

	if lateNightRatio(rec.HourlyActivity) > 0.4 {
		flags = append(flags, models.FlagExcessiveLateNight)
	}

	social := rec.MessagesCount + rec.CommentsCount + rec.ReactionsCount
	if rec.PostsCount > 5 && float64(social) < 0.2*float64(rec.PostsCount) {
		flags = append(flags, models.FlagLowSocialInteraction)
	}

	if len(rec.DailyPosts) >= 7 {
		recentPosts := sum(rec.DailyPosts[len(rec.DailyPosts)-3:])
		baseline := stat.Mean(rec.DailyPosts[:len(rec.DailyPosts)-3], nil)
		if baseline > 0 && recentPosts > 3*baseline {
			flags = append(flags, models.FlagPostingFrequencySpike)
		}
	}

	if len(rec.SessionDurations) >= 5 {
		recentAvg := stat.Mean(rec.SessionDurations[len(rec.SessionDurations)-3:], nil)
		baselineAvg := stat.Mean(rec.SessionDurations[:len(rec.SessionDurations)-3], nil)
		if recentAvg > 2*baselineAvg && recentAvg > 60 {
			flags = append(flags, models.FlagExtendedSessionDuration)
		} else if recentAvg < 0.3*baselineAvg {
			flags = append(flags, models.FlagShortenedSessionDuration)
		}
	}

	return flags
}

// SelfTest runs the extractor on a fixed synthetic record and checks field
// bounds. Health probe only.
func (e *Extractor) SelfTest() error {
	rec := models.ActivityRecord{
		PostsCount:         5,
		CommentsCount:      10,
		ReactionsCount:     15,
		MessagesCount:      8,
		LoginFrequency:     5,
		AvgSessionDuration: 45,
	}

	signals, err := e.Analyze(rec, 7)
	if err != nil {
		return fmt.Errorf("[BehaviorExtractor] self test analyze failed: %w", err)
	}
	if signals.ActivityScore < 0 || signals.ActivityScore > 1 {
		return fmt.Errorf("[BehaviorExtractor] activity score %f out of [0,1]", signals.ActivityScore)
	}
	if signals.EngagementTrend != models.TrendStable {
		return fmt.Errorf("[BehaviorExtractor] expected stable trend for synthetic input, got %s",
			signals.EngagementTrend)
	}
	return nil
}

// Capabilities describes the extractor for introspection endpoints.
type Capabilities struct {
	ActivityMetrics []string `json:"activity_metrics"`
	RhythmFeatures  []string `json:"rhythm_features"`
	AnomalyFlags    []string `json:"anomaly_flags"`
	TimeWindowDays  [2]int   `json:"time_window_days"`
}

func (e *Extractor) Capabilities() Capabilities {
	return Capabilities{
		ActivityMetrics: []string{
			"posts_count", "comments_count", "reactions_count",
			"messages_count", "login_frequency", "avg_session_duration",
		},
		RhythmFeatures: []string{"late_night_ratio", "weekend_ratio", "consistency_score"},
		AnomalyFlags: []string{
			models.FlagSuddenActivityDrop, models.FlagExcessiveLateNight, models.FlagLowSocialInteraction,
			models.FlagPostingFrequencySpike, models.FlagExtendedSessionDuration, models.FlagShortenedSessionDuration,
		},
		TimeWindowDays: [2]int{1, 365},
	}
}

func capRatio(v, max float64) float64 {
	return math.Min(v/max, 1.0)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0.0), 1.0)
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
