package models

import "time"

// StressAssessment is the fused, attributable output of the scorer.
// ContributingFactors are severity-tagged human-readable descriptions,
// ordered by contribution; Recommendations are deduplicated and capped.
type StressAssessment struct {
	StressScore         float64  `json:"stress_score" dynamodbav:"stress_score"`
	Confidence          float64  `json:"confidence" dynamodbav:"confidence"`
	ContributingFactors []string `json:"contributing_factors" dynamodbav:"contributing_factors"`
	Recommendations     []string `json:"recommendations" dynamodbav:"recommendations"`
}

// AnalysisRequest is one unit of work on the analysis-requests topic.
// Text and Activity are both optional; at least one must be present for
// the request to produce an assessment.
type AnalysisRequest struct {
	RequestID  string          `json:"request_id"`
	UserID     string          `json:"user_id"`
	Text       string          `json:"text,omitempty"`
	Activity   *ActivityRecord `json:"activity,omitempty"`
	WindowDays int             `json:"window_days,omitempty"`
}

// AssessmentRecord is what the pipeline publishes and stores: the fused
// assessment plus provenance. PolarityScore/PolarityLabel come from the
// VADER cross-check on the preprocessed text and exist for observability
// only; they are never an input to scoring.
type AssessmentRecord struct {
	StressAssessment
	RequestID     string    `json:"request_id" dynamodbav:"request_id"`
	UserID        string    `json:"user_id" dynamodbav:"user_id"`
	Sources       []string  `json:"sources" dynamodbav:"sources"`
	PolarityScore float64   `json:"polarity_score,omitempty" dynamodbav:"polarity_score"`
	PolarityLabel string    `json:"polarity_label,omitempty" dynamodbav:"polarity_label"`
	Timestamp     time.Time `json:"timestamp" dynamodbav:"timestamp"`
}
