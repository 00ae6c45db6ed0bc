package models

// ActivityRecord carries the aggregated, privacy-safe activity counters a
// caller supplies for one user. Raw events never reach this service.
type ActivityRecord struct {
	PostsCount         int     `json:"posts_count"`
	CommentsCount      int     `json:"comments_count"`
	ReactionsCount     int     `json:"reactions_count"`
	MessagesCount      int     `json:"messages_count"`
	LoginFrequency     int     `json:"login_frequency"`
	AvgSessionDuration float64 `json:"avg_session_duration"`

	// HourlyActivity buckets activity by hour of day (0-23),
	// DailyActivity by day of week (0=Monday .. 6=Sunday).
	HourlyActivity [24]float64 `json:"hourly_activity"`
	DailyActivity  [7]float64  `json:"daily_activity"`

	RecentActivity   []float64 `json:"recent_activity,omitempty"`
	DailyPosts       []float64 `json:"daily_posts,omitempty"`
	SessionDurations []float64 `json:"session_durations,omitempty"`
}

// RhythmChanges describes shifts in when a user is active.
// ConsistencyScore is 1 - coefficient of variation of daily activity and is
// deliberately not clamped: values below zero mean std exceeds the mean,
// a valid "highly irregular" signal.
type RhythmChanges struct {
	LateNightRatio   float64 `json:"late_night_ratio"`
	WeekendRatio     float64 `json:"weekend_ratio"`
	ConsistencyScore float64 `json:"consistency_score"`
}

// Engagement trend labels.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Anomaly flag names, shared between the behavior extractor, the fusion
// scorer and the wire format.
const (
	FlagSuddenActivityDrop       = "sudden_activity_drop"
	FlagExcessiveLateNight       = "excessive_late_night_activity"
	FlagLowSocialInteraction     = "low_social_interaction"
	FlagPostingFrequencySpike    = "posting_frequency_spike"
	FlagExtendedSessionDuration  = "extended_session_duration"
	FlagShortenedSessionDuration = "shortened_session_duration"
)

// BehaviorSignals is the full output of one behavioral analysis.
type BehaviorSignals struct {
	ActivityScore   float64       `json:"activity_score"`
	RhythmChanges   RhythmChanges `json:"rhythm_changes"`
	EngagementTrend string        `json:"engagement_trend"`
	AnomalyFlags    []string      `json:"anomaly_flags"`
}

// BehaviorFeatureSet is the fusion-facing view of behavior signals, with
// nilable sub-fields for completeness accounting.
type BehaviorFeatureSet struct {
	ActivityScore   *float64       `json:"activity_score,omitempty"`
	RhythmChanges   *RhythmChanges `json:"rhythm_changes,omitempty"`
	EngagementTrend string         `json:"engagement_trend,omitempty"`
	AnomalyFlags    []string       `json:"anomaly_flags,omitempty"`
}

// Features converts extractor output into a fully populated feature set.
func (bs BehaviorSignals) Features() *BehaviorFeatureSet {
	score := bs.ActivityScore
	rhythm := bs.RhythmChanges

	flags := bs.AnomalyFlags
	if flags == nil {
		flags = []string{}
	}

	return &BehaviorFeatureSet{
		ActivityScore:   &score,
		RhythmChanges:   &rhythm,
		EngagementTrend: bs.EngagementTrend,
		AnomalyFlags:    flags,
	}
}
