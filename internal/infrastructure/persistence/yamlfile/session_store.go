package yamlfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"twitchCli/internal/domain"
)

const tokenKey = "oauth"

// SessionStore keeps the session inside a YAML config document. Keys it does
// not know about are preserved on save. JSON documents load as well.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) (*SessionStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("yamlfile: empty config path")
	}
	return &SessionStore{path: path}, nil
}

func (s *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	doc, err := s.read()
	if err != nil {
		return domain.Session{}, err
	}

	for _, item := range doc {
		if key, ok := item.Key.(string); ok && key == tokenKey {
			token, _ := item.Value.(string)
			return domain.Session{OAuthToken: token}, nil
		}
	}
	return domain.Session{}, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := s.read()
	if err != nil {
		return err
	}

	replaced := false
	for i, item := range doc {
		if key, ok := item.Key.(string); ok && key == tokenKey {
			doc[i].Value = session.OAuthToken
			replaced = true
		}
	}
	if !replaced {
		doc = append(doc, yaml.MapItem{Key: tokenKey, Value: session.OAuthToken})
	}

	out, err := s.encode(doc)
	if err != nil {
		return fmt.Errorf("yamlfile: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("yamlfile: creating dir: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o600); err != nil {
		return fmt.Errorf("yamlfile: write %s: %w", s.path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("yamlfile: chmod %s: %w", s.path, err)
	}
	return nil
}

// encode keeps a .json config as JSON; everything else is written as YAML.
func (s *SessionStore) encode(doc yaml.MapSlice) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(s.path), ".json") {
		return yaml.Marshal(doc)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, doc); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// writeJSON encodes a decoded YAML value, keeping mapping keys in document
// order.
func writeJSON(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case yaml.MapSlice:
		buf.WriteByte('{')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(fmt.Sprint(item.Key))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, item.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, elem := range val {
			var nested bytes.Buffer
			if err := writeJSON(&nested, elem); err != nil {
				return err
			}
			m[fmt.Sprint(k)] = json.RawMessage(nested.Bytes())
		}
		raw, err := json.Marshal(m)
		if err != nil {
			return err
		}
		buf.Write(raw)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(raw)
	}
	return nil
}

func (s *SessionStore) read() (yaml.MapSlice, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return yaml.MapSlice{}, nil
		}
		return nil, fmt.Errorf("yamlfile: read %s: %w", s.path, err)
	}

	var doc yaml.MapSlice
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yamlfile: parse %s: %w", s.path, err)
	}
	return doc, nil
}

var _ domain.SessionRepository = (*SessionStore)(nil)
