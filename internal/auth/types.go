package auth

// the credential field every gated request body may carry
type Credential struct {
	APIKey string `json:"api_key"`
}

// context key set once the gate has let a request through
const ContextKeyAuthorized = "authorized"

// query parameter used by the websocket upgrade, where browsers cannot set headers
const QueryParamAPIKey = "api_key"

// compares presented credentials against the shared secret
type Gate struct {
	secret []byte
}
