package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"twitchCli/internal/domain"
)

const (
	platformTwitch = "twitch"
	roleViewer     = "viewer"
)

// CredentialStore keeps the viewer session in a sqlite database, one row per
// (platform, role).
type CredentialStore struct {
	db *sql.DB
}

func NewCredentialStore(dbPath string) (*CredentialStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite: empty db path")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &CredentialStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	platform TEXT NOT NULL,
	role TEXT NOT NULL,
	access_token TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (platform, role)
);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: migrate credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *CredentialStore) Load(ctx context.Context) (domain.Session, error) {
	const query = `
SELECT access_token
FROM credentials
WHERE platform = ? AND role = ?
LIMIT 1;
`

	var accessToken sql.NullString
	err := s.db.QueryRowContext(ctx, query, platformTwitch, roleViewer).Scan(&accessToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("sqlite: load session: %w", err)
	}

	return domain.Session{OAuthToken: accessToken.String}, nil
}

func (s *CredentialStore) Save(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO credentials (platform, role, access_token, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(platform, role) DO UPDATE SET
	access_token=excluded.access_token,
	updated_at=excluded.updated_at;
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		platformTwitch,
		roleViewer,
		session.OAuthToken,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save session: %w", err)
	}
	return nil
}

var _ domain.SessionRepository = (*CredentialStore)(nil)
