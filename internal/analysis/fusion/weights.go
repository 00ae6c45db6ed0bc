package fusion

// Feature names for the 9-dimensional fused vector.
const (
	FeatureNegativeSentiment     = "negative_sentiment"
	FeatureStressKeywords        = "stress_keywords"
	FeatureSafetyFlags           = "safety_flags"
	FeatureEmotionalDistress     = "emotional_distress"
	FeatureActivityDrop          = "activity_drop"
	FeatureLateNightActivity     = "late_night_activity"
	FeatureSocialIsolation       = "social_isolation"
	FeatureConsistencyDisruption = "consistency_disruption"
	FeatureEngagementDecline     = "engagement_decline"
)

// featureOrder fixes iteration order everywhere a map would otherwise make
// output nondeterministic.
var featureOrder = []string{
	FeatureNegativeSentiment,
	FeatureStressKeywords,
	FeatureSafetyFlags,
	FeatureEmotionalDistress,
	FeatureActivityDrop,
	FeatureLateNightActivity,
	FeatureSocialIsolation,
	FeatureConsistencyDisruption,
	FeatureEngagementDecline,
}

// featureWeights is the transparent scoring table: the relative importance
// of each feature, normalized at startup so the published table sums to 1.
// Never mutated at runtime; FeatureWeights returns a copy.
var featureWeights = normalizeWeights(map[string]float64{
	FeatureNegativeSentiment: 0.15,
	FeatureStressKeywords:    0.20,
	FeatureSafetyFlags:       0.25,
	FeatureEmotionalDistress: 0.10,

	FeatureActivityDrop:      0.12,
	FeatureLateNightActivity: 0.08,
	FeatureSocialIsolation:   0.10,

	FeatureConsistencyDisruption: 0.05,
	FeatureEngagementDecline:     0.05,
})

func normalizeWeights(raw map[string]float64) map[string]float64 {
	var total float64
	for _, w := range raw {
		total += w
	}
	normalized := make(map[string]float64, len(raw))
	for name, w := range raw {
		normalized[name] = w / total
	}
	return normalized
}

// FeatureWeights exposes the weight table for introspection.
func FeatureWeights() map[string]float64 {
	weights := make(map[string]float64, len(featureWeights))
	for name, w := range featureWeights {
		weights[name] = w
	}
	return weights
}

// factorDescriptions renders feature names for operators.
var factorDescriptions = map[string]string{
	FeatureNegativeSentiment:     "Negative emotional tone in recent posts",
	FeatureStressKeywords:        "Frequent use of stress-related language",
	FeatureSafetyFlags:           "Content indicating potential crisis or distress",
	FeatureEmotionalDistress:     "Expression of sadness, fear, or anger",
	FeatureActivityDrop:          "Significant decrease in platform engagement",
	FeatureLateNightActivity:     "Increased activity during late night hours",
	FeatureSocialIsolation:       "Reduced interaction with other users",
	FeatureConsistencyDisruption: "Irregular activity patterns",
	FeatureEngagementDecline:     "Declining participation in community activities",
}
