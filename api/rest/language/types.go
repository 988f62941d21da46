package language

// DetectRequest is the body of POST /detect_language
type DetectRequest struct {
	APIKey string `json:"api_key"`
	Code   string `json:"code"`
}

// DetectResponse names the detected language tag
type DetectResponse struct {
	Language string `json:"language"`
}
