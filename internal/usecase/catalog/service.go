package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"twitchCli/internal/domain"
)

const (
	pathUsers            = "users"
	pathFollows          = "users/follows"
	pathSearchCategories = "search/categories"
	pathStreams          = "streams"
	pathVideos           = "videos"

	// Only the first page of follows is read.
	followsPageSize = 100
)

// Service turns names into Helix ids and ids into result sets. Every step
// stops at the first failure; nothing is retried or cached.
type Service struct {
	gateway domain.APIGateway
	logger  *zap.Logger
}

func NewService(gateway domain.APIGateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// ResolveChannelID returns domain.ErrChannelNotFound when the login has no
// user record or the record has no creation timestamp.
func (s *Service) ResolveChannelID(ctx context.Context, session domain.Session, login string) (string, error) {
	if !session.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}

	login = strings.TrimSpace(login)
	if login == "" {
		return "", fmt.Errorf("catalog: empty channel name: %w", domain.ErrChannelNotFound)
	}

	doc, err := s.gateway.Request(ctx, session, http.MethodGet, pathUsers, url.Values{"login": {login}}, nil)
	if err != nil {
		return "", err
	}

	records, ok := doc.Records("data")
	if !ok {
		return "", fmt.Errorf("catalog: users lookup for %q: %w", login, domain.ErrMalformedResponse)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("catalog: %q: %w", login, domain.ErrChannelNotFound)
	}

	var identity domain.ChannelIdentity
	if err := records[0].Decode(&identity); err != nil {
		return "", fmt.Errorf("catalog: users lookup for %q: %w", login, domain.ErrMalformedResponse)
	}
	if !identity.Exists() {
		return "", fmt.Errorf("catalog: %q: %w", login, domain.ErrChannelNotFound)
	}

	s.logger.Debug("resolved channel", zap.String("login", login), zap.String("id", identity.ID))
	return identity.ID, nil
}

func (s *Service) ResolveOwnID(ctx context.Context, session domain.Session) (string, error) {
	if !session.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}

	doc, err := s.gateway.Request(ctx, session, http.MethodGet, pathUsers, nil, nil)
	if err != nil {
		return "", err
	}

	records, ok := doc.Records("data")
	if !ok || len(records) == 0 {
		return "", fmt.Errorf("catalog: own user lookup: %w", domain.ErrMalformedResponse)
	}

	id, ok := records[0].String("id")
	if !ok || id == "" {
		return "", fmt.Errorf("catalog: own user lookup: %w", domain.ErrMalformedResponse)
	}
	return id, nil
}

// FollowedStreamQuery builds the streams query for the viewer's follows,
// narrowed to game when one is given. A failed game lookup surfaces as
// domain.ErrMalformedResponse, the same as any other bad fetch.
func (s *Service) FollowedStreamQuery(ctx context.Context, session domain.Session, game string) (url.Values, error) {
	ownID, err := s.ResolveOwnID(ctx, session)
	if err != nil {
		return nil, err
	}

	follows := url.Values{}
	follows.Set("from_id", ownID)
	follows.Set("first", strconv.Itoa(followsPageSize))

	doc, err := s.gateway.Request(ctx, session, http.MethodGet, pathFollows, follows, nil)
	if err != nil {
		return nil, err
	}

	total, ok := doc.Int("total")
	if !ok {
		return nil, fmt.Errorf("catalog: follows: %w", domain.ErrMalformedResponse)
	}
	if total == 0 {
		return nil, domain.ErrNoFollows
	}

	records, ok := doc.Records("data")
	if !ok {
		return nil, fmt.Errorf("catalog: follows: %w", domain.ErrMalformedResponse)
	}
	relations, err := domain.DecodeRecords[domain.FollowRelation](records)
	if err != nil {
		return nil, fmt.Errorf("catalog: follows: %w", domain.ErrMalformedResponse)
	}
	if len(relations) == 0 {
		return nil, domain.ErrNoFollows
	}
	if total > len(relations) {
		s.logger.Debug("follows truncated to first page",
			zap.Int("total", total),
			zap.Int("read", len(relations)),
		)
	}

	query := url.Values{}
	query["user_id"] = lo.Map(relations, func(r domain.FollowRelation, _ int) string {
		return r.ToID
	})

	if strings.TrimSpace(game) != "" {
		gameIDs, err := s.ResolveGameIDs(ctx, session, game)
		if err != nil {
			return nil, err
		}
		query["game_id"] = gameIDs
	}

	return query, nil
}

// ResolveGameIDs maps a game name to the category ids the search endpoint
// returns for it.
func (s *Service) ResolveGameIDs(ctx context.Context, session domain.Session, name string) ([]string, error) {
	if !session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	doc, err := s.gateway.Request(ctx, session, http.MethodGet, pathSearchCategories, url.Values{"query": {name}}, nil)
	if err != nil {
		return nil, err
	}

	records, ok := doc.Records("data")
	if !ok || len(records) == 0 || !records[0].Has("name") {
		return nil, fmt.Errorf("catalog: no category for %q: %w", name, domain.ErrMalformedResponse)
	}

	categories, err := domain.DecodeRecords[domain.Category](records)
	if err != nil {
		return nil, fmt.Errorf("catalog: categories: %w", domain.ErrMalformedResponse)
	}

	return lo.Map(categories, func(c domain.Category, _ int) string {
		return c.ID
	}), nil
}

// FetchStreams returns domain.ErrNoLiveStreams for an empty result set and
// domain.ErrMalformedResponse when the records lack a display name.
func (s *Service) FetchStreams(ctx context.Context, session domain.Session, query url.Values) ([]domain.Stream, error) {
	if !session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	doc, err := s.gateway.Request(ctx, session, http.MethodGet, pathStreams, query, nil)
	if err != nil {
		return nil, err
	}

	records, ok := doc.Records("data")
	if !ok {
		return nil, fmt.Errorf("catalog: streams: %w", domain.ErrMalformedResponse)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoLiveStreams
	}
	if !records[0].Has("user_name") {
		return nil, fmt.Errorf("catalog: streams: %w", domain.ErrMalformedResponse)
	}

	streams, err := domain.DecodeRecords[domain.Stream](records)
	if err != nil {
		return nil, fmt.Errorf("catalog: streams: %w", domain.ErrMalformedResponse)
	}
	return streams, nil
}

// FetchVideos returns an empty slice when the channel has no videos and
// domain.ErrMalformedResponse when the response carries no data at all.
func (s *Service) FetchVideos(ctx context.Context, session domain.Session, channelID string) ([]domain.Video, error) {
	if !session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	doc, err := s.gateway.Request(ctx, session, http.MethodGet, pathVideos, url.Values{"user_id": {channelID}}, nil)
	if err != nil {
		return nil, err
	}

	records, ok := doc.Records("data")
	if !ok {
		return nil, fmt.Errorf("catalog: videos: %w", domain.ErrMalformedResponse)
	}

	videos, err := domain.DecodeRecords[domain.Video](records)
	if err != nil {
		return nil, fmt.Errorf("catalog: videos: %w", domain.ErrMalformedResponse)
	}
	return videos, nil
}

// LiveStreams lists the followed channels that are live, optionally only
// those playing game.
func (s *Service) LiveStreams(ctx context.Context, session domain.Session, game string) ([]domain.Stream, error) {
	if !session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	query, err := s.FollowedStreamQuery(ctx, session, game)
	if err != nil {
		return nil, err
	}
	return s.FetchStreams(ctx, session, query)
}

func (s *Service) ChannelVideos(ctx context.Context, session domain.Session, login string) ([]domain.Video, error) {
	channelID, err := s.ResolveChannelID(ctx, session, login)
	if err != nil {
		return nil, err
	}
	return s.FetchVideos(ctx, session, channelID)
}
