package domain

import (
	"strings"
	"time"
)

// ChannelIdentity is the result of a users lookup. Twitch answers lookups for
// unknown logins with records that carry no creation timestamp.
type ChannelIdentity struct {
	ID          string     `json:"id"`
	Login       string     `json:"login"`
	DisplayName string     `json:"display_name"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (c ChannelIdentity) Exists() bool {
	return c.CreatedAt != nil && !c.CreatedAt.IsZero()
}

type Stream struct {
	UserID      string `json:"user_id"`
	UserLogin   string `json:"user_login"`
	UserName    string `json:"user_name"`
	GameName    string `json:"game_name"`
	Title       string `json:"title"`
	ViewerCount int    `json:"viewer_count"`
}

// Channel is the name handed to the player for this stream.
func (s Stream) Channel() string {
	if login := strings.TrimSpace(s.UserLogin); login != "" {
		return login
	}
	return s.UserName
}

type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Duration  string `json:"duration"`
	CreatedAt string `json:"created_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FollowRelation struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	ToName string `json:"to_name"`
}

// ChannelURL builds the target streamlink expects for a live channel.
func ChannelURL(channel string) string {
	return "twitch.tv/" + strings.TrimSpace(channel)
}
