// Package types contains common types used across the application
package types

// Standing is the API-facing view of one move's ranking state.
type Standing struct {
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name,omitempty"`
	Character  string  `json:"character,omitempty"`
	Score      float64 `json:"score"`
	Wins       float64 `json:"wins"`
	Total      int     `json:"total"`
	WinRate    float64 `json:"win_rate"`
	Confidence float64 `json:"confidence"`
	Tier       string  `json:"tier"`
}

// TierList groups standings of one category into ordered tier buckets.
type TierList struct {
	Category         string                `json:"category"`
	Order            []string              `json:"order"`
	Tiers            map[string][]Standing `json:"tiers"`
	InsufficientData bool                  `json:"insufficient_data"`
}

// Prediction is the head-to-head diagnostic returned by GET /predict.
type Prediction struct {
	ItemA           string  `json:"item_a"`
	ItemB           string  `json:"item_b"`
	ScoreA          float64 `json:"score_a"`
	ScoreB          float64 `json:"score_b"`
	PredictedWinner string  `json:"predicted_winner,omitempty"`
	Confidence      float64 `json:"confidence"`
}
