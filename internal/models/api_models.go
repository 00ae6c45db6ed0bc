package models

// Request bodies for the HTTP surface. Responses reuse the signal types
// directly.

type TextAnalysisRequest struct {
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}

type BehaviorAnalysisRequest struct {
	UserID         string         `json:"user_id"`
	Activity       ActivityRecord `json:"activity"`
	TimeWindowDays int            `json:"time_window_days,omitempty"`
}

type StressScoreRequest struct {
	UserID           string              `json:"user_id"`
	TextFeatures     *TextFeatureSet     `json:"text_features,omitempty"`
	BehaviorFeatures *BehaviorFeatureSet `json:"behavior_features,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
