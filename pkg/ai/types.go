package ai

import "context"

// AnalysisInput carries a user question plus the data context the model
// should ground its answer in.
type AnalysisInput struct {
	Question    string
	DataContext string
}

// AnalysisResult is the answer returned by the analysis capability.
type AnalysisResult struct {
	Answer string                 `json:"answer"`
	Raw    map[string]interface{} `json:"raw,omitempty"`
}

// Analyst describes an AI model capable of answering questions about
// aggregated user data.
type Analyst interface {
	Answer(ctx context.Context, input AnalysisInput) (AnalysisResult, error)
}
