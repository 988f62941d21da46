package syntax

// CheckRequest is the body of POST /syntax_check
type CheckRequest struct {
	APIKey   string `json:"api_key"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// CheckResponse lists the checker's stderr lines; empty means the snippet compiled
type CheckResponse struct {
	Errors []string `json:"errors"`
}
