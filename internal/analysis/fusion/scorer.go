package fusion

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/campuswell/stresslens/internal/models"
	"github.com/campuswell/stresslens/internal/validation"
)

// Squash constants for the final score: centered at the weighted-average
// midpoint so single strong features do not saturate the scale.
const (
	scoreCenter    = 0.5
	scoreSteepness = 5.0
)

// Factor selection constants.
const (
	factorValueFloor        = 0.1
	factorContributionFloor = 0.05
	maxFactors              = 5
	maxRecommendations      = 5
)

// Thresholds split the score range into recommendation tiers.
type Thresholds struct {
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 0.4, High: 0.7}
}

// Scorer fuses text and behavior feature sets into one attributable
// assessment. Stateless beyond its immutable tables; safe for concurrent
// use.
type Scorer struct {
	thresholds Thresholds
}

func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// CalculateScore produces a StressAssessment from whichever feature sets
// are present. It fails with a validation error when both are nil; a single
// source is always enough.
func (s *Scorer) CalculateScore(text *models.TextFeatureSet, behavior *models.BehaviorFeatureSet) (models.StressAssessment, error) {
	if text == nil && behavior == nil {
		return models.StressAssessment{}, fmt.Errorf("%w: at least one feature set must be provided",
			validation.ErrValidation)
	}

	features := normalizeFeatures(text, behavior)
	score := s.weightedScore(features)
	factors := contributingFactors(features)

	return models.StressAssessment{
		StressScore:         round3(score),
		Confidence:          round3(confidence(text, behavior)),
		ContributingFactors: factors,
		Recommendations:     s.recommendations(score, factors),
	}, nil
}

// normalizeFeatures maps raw signals onto the fixed 9-feature vector.
// Features whose source is absent are omitted entirely, never defaulted to
// zero, so the weighted average stays comparable across source mixes.
func normalizeFeatures(text *models.TextFeatureSet, behavior *models.BehaviorFeatureSet) map[string]float64 {
	features := make(map[string]float64, len(featureOrder))

	if text != nil {
		if text.Sentiment != nil {
			features[FeatureNegativeSentiment] = text.Sentiment.Negative
		} else {
			features[FeatureNegativeSentiment] = 0.0
		}

		features[FeatureStressKeywords] = math.Min(float64(len(text.StressIndicators))/5.0, 1.0)
		features[FeatureSafetyFlags] = math.Min(float64(len(text.SafetyFlags))/2.0, 1.0)

		var distress float64
		if text.Emotion != nil {
			distress = text.Emotion.Sadness + text.Emotion.Fear + text.Emotion.Anger
		}
		features[FeatureEmotionalDistress] = math.Min(distress, 1.0)
	}

	if behavior != nil {
		activityScore := 0.5
		if behavior.ActivityScore != nil {
			activityScore = *behavior.ActivityScore
		}
		features[FeatureActivityDrop] = math.Max(0, 1-activityScore)

		lateNight, consistency := 0.0, 1.0
		if behavior.RhythmChanges != nil {
			lateNight = behavior.RhythmChanges.LateNightRatio
			consistency = behavior.RhythmChanges.ConsistencyScore
		}
		features[FeatureLateNightActivity] = math.Min(lateNight*2, 1.0)
		// consistency may legitimately be negative; the disruption feature
		// is floored at zero on this side instead
		features[FeatureConsistencyDisruption] = math.Min(math.Max(0, 1-consistency), 1.0)

		features[FeatureSocialIsolation] = 0.0
		for _, flag := range behavior.AnomalyFlags {
			if flag == models.FlagLowSocialInteraction {
				features[FeatureSocialIsolation] = 1.0
			}
		}

		features[FeatureEngagementDecline] = 0.0
		if behavior.EngagementTrend == models.TrendDecreasing {
			features[FeatureEngagementDecline] = 1.0
		}
	}

	return features
}

// weightedScore is a weighted average over the present features only: the
// weight denominator is re-normalized so the score does not depend on how
// many sources were supplied.
func (s *Scorer) weightedScore(features map[string]float64) float64 {
	var total, totalWeight float64
	for _, name := range featureOrder {
		value, ok := features[name]
		if !ok {
			continue
		}
		weight := featureWeights[name]
		total += weight * value
		totalWeight += weight
	}

	score := 0.0
	if totalWeight > 0 {
		score = total / totalWeight
	}

	score = logistic(score, scoreCenter, scoreSteepness)
	return clamp01(score)
}

// confidence measures evidence completeness, not accuracy: each source
// contributes the fraction of its expected sub-fields that are populated,
// and corroborating sources earn a capped multi-modal boost.
func confidence(text *models.TextFeatureSet, behavior *models.BehaviorFeatureSet) float64 {
	var parts []float64

	if text != nil {
		completeness := 0.0
		if text.Sentiment != nil {
			completeness += 0.25
		}
		if text.Emotion != nil {
			completeness += 0.25
		}
		if text.StressIndicators != nil {
			completeness += 0.25
		}
		if text.SafetyFlags != nil {
			completeness += 0.25
		}
		parts = append(parts, completeness)
	}

	if behavior != nil {
		completeness := 0.0
		if behavior.ActivityScore != nil {
			completeness += 1.0 / 3
		}
		if behavior.RhythmChanges != nil {
			completeness += 1.0 / 3
		}
		if behavior.AnomalyFlags != nil {
			completeness += 1.0 / 3
		}
		parts = append(parts, completeness)
	}

	if len(parts) == 0 {
		return 0.0
	}

	var sum float64
	for _, p := range parts {
		sum += p
	}
	base := sum / float64(len(parts))

	if len(parts) == 2 {
		base = math.Min(base*1.2, 1.0)
	}
	return base
}

// contributingFactors picks the strongest weighted features and renders
// them as severity-tagged descriptions.
func contributingFactors(features map[string]float64) []string {
	type contribution struct {
		name  string
		value float64
		score float64
	}

	var contributions []contribution
	for _, name := range featureOrder {
		value, ok := features[name]
		if !ok || value <= factorValueFloor {
			continue
		}
		contributions = append(contributions, contribution{
			name:  name,
			value: value,
			score: featureWeights[name] * value,
		})
	}

	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].score != contributions[j].score {
			return contributions[i].score > contributions[j].score
		}
		// name tiebreak keeps identical inputs byte-identical
		return contributions[i].name < contributions[j].name
	})

	factors := []string{}
	for _, c := range contributions {
		if c.score <= factorContributionFloor || len(factors) == maxFactors {
			break
		}
		factors = append(factors, renderFactor(c.name, c.value))
	}
	return factors
}

func renderFactor(name string, value float64) string {
	severity := "Mild"
	switch {
	case value > 0.8:
		severity = "High"
	case value > 0.5:
		severity = "Moderate"
	}

	description, ok := factorDescriptions[name]
	if !ok {
		description = name
	}
	return severity + ": " + description
}

// recommendations tiers fixed baseline suggestions by score, then appends
// targeted ones keyed off the rendered factor text, deduplicated in order
// and capped.
func (s *Scorer) recommendations(score float64, factors []string) []string {
	var recs []string

	switch {
	case score > s.thresholds.High:
		recs = append(recs,
			"Consider reaching out to a counselor or trusted friend",
			"Explore stress management resources in the wellness section",
			"Take regular breaks from academic work",
		)
	case score > s.thresholds.Medium:
		recs = append(recs,
			"Practice mindfulness or relaxation techniques",
			"Maintain regular sleep and exercise routines",
			"Connect with supportive community members",
		)
	default:
		recs = append(recs,
			"Keep up the great work managing your wellbeing",
			"Continue engaging with the supportive community",
		)
	}

	factorText := strings.ToLower(strings.Join(factors, " "))

	if strings.Contains(factorText, "late night") {
		recs = append(recs, "Consider establishing a regular sleep schedule")
	}
	if strings.Contains(factorText, "social isolation") || strings.Contains(factorText, "interaction") {
		recs = append(recs, "Try participating in group discussions or study groups")
	}
	if strings.Contains(factorText, "negative") || strings.Contains(factorText, "distress") {
		recs = append(recs, "Consider journaling or talking to someone about your feelings")
	}
	if strings.Contains(factorText, "activity drop") {
		recs = append(recs, "Gentle re-engagement with activities you enjoy might help")
	}

	seen := make(map[string]struct{}, len(recs))
	deduped := make([]string, 0, len(recs))
	for _, rec := range recs {
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		deduped = append(deduped, rec)
		if len(deduped) == maxRecommendations {
			break
		}
	}
	return deduped
}

// SelfTest fuses fixed synthetic feature sets and checks output bounds.
// Health probe only.
func (s *Scorer) SelfTest() error {
	activity := 0.6
	assessment, err := s.CalculateScore(
		&models.TextFeatureSet{
			Sentiment:        &models.SentimentScores{Positive: 0.7, Negative: 0.3},
			Emotion:          &models.EmotionScores{Joy: 0.8, Sadness: 0.2},
			StressIndicators: []string{"exam"},
			SafetyFlags:      []string{},
		},
		&models.BehaviorFeatureSet{
			ActivityScore:   &activity,
			RhythmChanges:   &models.RhythmChanges{LateNightRatio: 0.2, ConsistencyScore: 0.9},
			EngagementTrend: models.TrendStable,
			AnomalyFlags:    []string{},
		},
	)
	if err != nil {
		return fmt.Errorf("[FusionScorer] self test scoring failed: %w", err)
	}
	if assessment.StressScore < 0 || assessment.StressScore > 1 {
		return fmt.Errorf("[FusionScorer] stress score %f out of [0,1]", assessment.StressScore)
	}
	if assessment.Confidence < 0 || assessment.Confidence > 1 {
		return fmt.Errorf("[FusionScorer] confidence %f out of [0,1]", assessment.Confidence)
	}
	if len(assessment.Recommendations) == 0 {
		return fmt.Errorf("[FusionScorer] expected at least one recommendation")
	}
	return nil
}

// Capabilities describes the scorer for introspection endpoints.
type Capabilities struct {
	ModelType      string             `json:"model_type"`
	FeatureWeights map[string]float64 `json:"feature_weights"`
	Thresholds     Thresholds         `json:"thresholds"`
}

func (s *Scorer) Capabilities() Capabilities {
	return Capabilities{
		ModelType:      "transparent_weighted_fusion",
		FeatureWeights: FeatureWeights(),
		Thresholds:     s.thresholds,
	}
}

func logistic(x, center, steepness float64) float64 {
	return 1 / (1 + math.Exp(-steepness*(x-center)))
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0.0), 1.0)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
