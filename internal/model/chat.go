package model

// Query intents
const (
	IntentCareGuidance          = "care_guidance"
	IntentProductRecommendation = "product_recommendation"
	IntentCategoryInquiry       = "category_inquiry"
	IntentUnknown               = "unknown"
)

// Urgency levels
const (
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// ChatRequest represents an inbound customer message
type ChatRequest struct {
	Message   string  `json:"message" binding:"required"`
	UserID    *string `json:"user_id,omitempty"`
	SessionID *string `json:"session_id,omitempty"`
}

// QueryAnalysis is the parsed interpretation of a customer message
type QueryAnalysis struct {
	OriginalQuery string    `json:"original_query"`
	Intent        string    `json:"intent"`
	Keywords      []string  `json:"keywords"`
	Entities      FilterSet `json:"entities"`
	Urgency       string    `json:"urgency"`
}

// ChatResponse is the recommendation envelope returned for every message
type ChatResponse struct {
	Response               string        `json:"response"`
	ProductRecommendations []Product     `json:"product_recommendations"`
	CareGuides             []CareGuide   `json:"care_guides"`
	SuggestedActions       []string      `json:"suggested_actions"`
	ConfidenceScore        float64       `json:"confidence_score"`
	QueryUnderstood        QueryAnalysis `json:"query_understood"`
}
