package dto

// AnalysisRequest is the inbound payload for the chat-analyze endpoint. The
// question is required; the email, when present, attributes the analysis in
// the activity log.
type AnalysisRequest struct {
	Question string `json:"question" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// AnalysisResponse carries the natural-language answer derived from the
// aggregated user data. Answer is never empty: when the capability produces
// no content an explicit no-answer marker is returned instead.
type AnalysisResponse struct {
	Answer string `json:"answer"`
}
