package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/automenta/mcr/internal/logging"
)

// FileStore persists one JSON document per session under directory,
// with an in-memory cache that reads prefer and disk as the durability
// backstop. Every mutation rewrites the session's file atomically
// (write to a temp file, then rename) before the call returns, so a
// successful AddClauses is durable by the time the caller observes it.
type FileStore struct {
	mu        sync.RWMutex
	directory string
	cache     map[string]*Session
	log       *logging.Logger
}

// NewFileStore builds a FileStore rooted at directory, creating it if
// it does not already exist.
func NewFileStore(directory string) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		directory: directory,
		cache:     make(map[string]*Session),
		log:       logging.Get(logging.CategorySession),
	}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.directory, id+".json")
}

func (s *FileStore) writeLocked(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(sess.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(sess.ID))
}

func (s *FileStore) loadLocked(id string) (*Session, error) {
	if sess, ok := s.cache[id]; ok {
		return sess, nil
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	s.cache[id] = &sess
	return &sess, nil
}

func (s *FileStore) CreateSession(id string) (*Session, error) {
	if id == "" {
		id = NewSessionID()
	}
	sess := &Session{ID: id, CreatedAt: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(sess); err != nil {
		return nil, err
	}
	s.cache[id] = sess
	return sess, nil
}

func (s *FileStore) GetSession(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(id)
}

func (s *FileStore) DeleteSession(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.loadLocked(id); err != nil {
		return false, nil
	}
	delete(s.cache, id)
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return false, err
	}
	return true, nil
}

func (s *FileStore) ListSessions() ([]*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, err
	}
	out := make([]*Session, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		id := e.Name()[:len(e.Name())-len(".json")]
		sess, err := s.loadLocked(id)
		if err != nil {
			s.log.Warn("skipping unreadable session file %s: %v", e.Name(), err)
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *FileStore) GetKnowledgeBase(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadLocked(id)
	if err != nil {
		return "", err
	}
	return JoinKnowledgeBase(sess.Clauses), nil
}

func (s *FileStore) AddClauses(id string, clauses []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadLocked(id)
	if err != nil {
		return err
	}
	updated := *sess
	updated.Clauses = append(append([]string{}, sess.Clauses...), clauses...)
	if err := s.writeLocked(&updated); err != nil {
		return err
	}
	s.cache[id] = &updated
	return nil
}

func (s *FileStore) GetLexiconSummary(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadLocked(id)
	if err != nil {
		return "", err
	}
	return lexiconSummary(sess.Clauses), nil
}

func (s *FileStore) GetActiveStrategy(id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadLocked(id)
	if err != nil {
		return "", false, err
	}
	if sess.ActiveStrategyID == "" {
		return "", false, nil
	}
	return sess.ActiveStrategyID, true, nil
}

func (s *FileStore) SetActiveStrategy(id string, strategyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadLocked(id)
	if err != nil {
		return err
	}
	updated := *sess
	updated.ActiveStrategyID = strategyID
	if err := s.writeLocked(&updated); err != nil {
		return err
	}
	s.cache[id] = &updated
	return nil
}
