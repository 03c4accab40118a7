package domain

// Session holds the credentials attached to every Helix call.
// An empty OAuthToken means the viewer never authenticated.
type Session struct {
	ClientID   string
	OAuthToken string
}

func (s Session) Authenticated() bool {
	return s.OAuthToken != ""
}

// WithToken returns a copy of the session carrying token.
func (s Session) WithToken(token string) Session {
	return Session{
		ClientID:   s.ClientID,
		OAuthToken: token,
	}
}

type TokenInfo struct {
	ClientID  string
	Login     string
	UserID    string
	Scopes    []string
	ExpiresIn int
}
