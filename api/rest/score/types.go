package score

// ScoreRequest is the body of POST /score
type ScoreRequest struct {
	APIKey    string `json:"api_key"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// ScoreResponse is the similarity percentage in [0, 100], two decimals
type ScoreResponse struct {
	Similarity float64 `json:"similarity"`
}
