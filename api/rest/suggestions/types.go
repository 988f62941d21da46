package suggestions

// SuggestRequest is the body of POST /ml_suggest
type SuggestRequest struct {
	APIKey   string `json:"api_key"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// SuggestResponse carries the corrected code, or one of the warning sentinels
type SuggestResponse struct {
	Suggestion string `json:"suggestion"`
}
