package models

// SentimentScores is a probability triplet over tone classes. The three
// fractions always sum to 1.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// EmotionScores holds six independent category scores in [0,1]. Categories
// are not mutually exclusive and do not need to sum to 1.
type EmotionScores struct {
	Joy      float64 `json:"joy"`
	Sadness  float64 `json:"sadness"`
	Anger    float64 `json:"anger"`
	Fear     float64 `json:"fear"`
	Surprise float64 `json:"surprise"`
	Disgust  float64 `json:"disgust"`
}

// TextSignals is the full output of a single text analysis. It is computed
// per call and never stored with the raw text it came from.
type TextSignals struct {
	Sentiment        SentimentScores `json:"sentiment"`
	Emotion          EmotionScores   `json:"emotion"`
	ToxicityScore    float64         `json:"toxicity_score"`
	StressIndicators []string        `json:"stress_indicators"`
	SafetyFlags      []string        `json:"safety_flags"`
}

// TextFeatureSet is the fusion-facing view of text signals. Sub-fields are
// pointers/nilable so the scorer can tell "absent" from "zero" when it
// computes evidence completeness.
type TextFeatureSet struct {
	Sentiment        *SentimentScores `json:"sentiment,omitempty"`
	Emotion          *EmotionScores   `json:"emotion,omitempty"`
	StressIndicators []string         `json:"stress_indicators,omitempty"`
	SafetyFlags      []string         `json:"safety_flags,omitempty"`
}

// Features converts extractor output into a fully populated feature set.
func (ts TextSignals) Features() *TextFeatureSet {
	sentiment := ts.Sentiment
	emotion := ts.Emotion

	indicators := ts.StressIndicators
	if indicators == nil {
		indicators = []string{}
	}
	flags := ts.SafetyFlags
	if flags == nil {
		flags = []string{}
	}

	return &TextFeatureSet{
		Sentiment:        &sentiment,
		Emotion:          &emotion,
		StressIndicators: indicators,
		SafetyFlags:      flags,
	}
}
