package health

// Response represents the health check response
type Response struct {
	Status   string          `json:"status"`
	Service  string          `json:"service"`
	Version  string          `json:"version,omitempty"`
	Checkers map[string]bool `json:"checkers,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}
