package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated  = errors.New("no oauth token stored")
	ErrTokenExpired      = errors.New("oauth token expired")
	ErrChannelNotFound   = errors.New("channel does not exist")
	ErrNoFollows         = errors.New("no followed channels")
	ErrNoLiveStreams     = errors.New("no followed channel is live")
	ErrMalformedResponse = errors.New("malformed helix response")
)

// ResponseError is returned when a Helix body could not be parsed at all.
// Body keeps the raw payload so it can be shown to the user.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("helix: unparseable response (status %d)", e.StatusCode)
}
