package domain

// Session carries the authenticated user's identity and tokens. It is owned
// by the session collaborator (login/refresh happen upstream); the core only
// reads it and attaches the access token to outbound calls.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	UserID       int64
	Email        string
	FirstName    string
	LastName     string
}
