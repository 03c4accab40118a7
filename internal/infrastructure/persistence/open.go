package persistence

import (
	"path/filepath"
	"strings"

	"twitchCli/internal/domain"
	"twitchCli/internal/infrastructure/persistence/sqlite"
	"twitchCli/internal/infrastructure/persistence/yamlfile"
)

// OpenSessionStore picks the backend from the file extension: sqlite for
// .db/.sqlite/.sqlite3, a YAML document otherwise. Callers close the result
// when it implements io.Closer.
func OpenSessionStore(path string) (domain.SessionRepository, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.NewCredentialStore(path)
	default:
		return yamlfile.NewSessionStore(path)
	}
}
