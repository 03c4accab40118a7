package twitchinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"twitchCli/internal/domain"
)

const DefaultAPIBaseURL = "https://api.twitch.tv/helix/"

// Gateway issues Helix calls one at a time and hands back the parsed body.
type Gateway struct {
	baseURL *url.URL
	httpCli *http.Client
	logger  *zap.Logger
}

func NewGateway(baseURL string, httpCli *http.Client, logger *zap.Logger) (*Gateway, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultAPIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("helix: base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("helix: base url %q is not absolute", baseURL)
	}

	if httpCli == nil {
		httpCli = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		baseURL: u,
		httpCli: httpCli,
		logger:  logger,
	}, nil
}

func (g *Gateway) Request(
	ctx context.Context,
	session domain.Session,
	method, path string,
	query url.Values,
	body any,
) (domain.Document, error) {
	endpoint, err := g.resolve(path, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost:
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("helix: encoding %s body: %w", path, err)
			}
			reader = bytes.NewReader(payload)
		}
	default:
		return nil, fmt.Errorf("helix: unsupported method %q", method)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("helix: building %s %s: %w", method, path, err)
	}
	req.Header.Set("Client-ID", session.ClientID)
	req.Header.Set("Authorization", "Bearer "+session.OAuthToken)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := g.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("helix: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("helix: reading %s body: %w", path, err)
	}

	g.logger.Debug("helix request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("duration", time.Since(started)),
	)

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, &domain.ResponseError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	// Any error envelope (numeric status) is treated as a stale token.
	if doc.IsNumber("status") {
		msg, _ := doc.String("message")
		g.logger.Debug("helix error envelope",
			zap.String("path", path),
			zap.String("message", msg),
		)
		return nil, fmt.Errorf("helix: %s %s: %w", method, path, domain.ErrTokenExpired)
	}

	return doc, nil
}

func (g *Gateway) resolve(path string, query url.Values) (string, error) {
	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("helix: path %q: %w", path, err)
	}
	if rel.Scheme != "" || rel.Host != "" {
		return "", fmt.Errorf("helix: path %q must be relative to the api base", path)
	}

	u := g.baseURL.ResolveReference(rel)
	if len(query) > 0 {
		merged := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				merged.Add(k, v)
			}
		}
		u.RawQuery = merged.Encode()
	}
	return u.String(), nil
}

var _ domain.APIGateway = (*Gateway)(nil)
