package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/automenta/mcr/internal/logging"
)

// SQLStore is a supplemental Session Store backend over database/sql,
// offered alongside the memory and file implementations: a
// "replace/append durable facts keyed by an id" shape suited to a
// relational persistence layer. Driver is either "sqlite3" or
// "postgres"; placeholder syntax is adapted accordingly since
// database/sql does not abstract it.
type SQLStore struct {
	db     *sql.DB
	driver string
	log    *logging.Logger
}

// NewSQLStore opens dsn with the named driver and ensures the schema
// exists.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	store := &SQLStore{db: db, driver: driver, log: logging.Get(logging.CategorySession)}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLStore) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS mcr_sessions (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			active_strategy_id TEXT
		)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS mcr_clauses (
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			clause TEXT NOT NULL
		)`)
	return err
}

func (s *SQLStore) CreateSession(id string) (*Session, error) {
	if id == "" {
		id = NewSessionID()
	}
	now := time.Now()
	q := fmt.Sprintf("INSERT INTO mcr_sessions (id, created_at) VALUES (%s, %s)", s.placeholder(1), s.placeholder(2))
	if _, err := s.db.Exec(q, id, now); err != nil {
		return nil, err
	}
	return &Session{ID: id, CreatedAt: now}, nil
}

func (s *SQLStore) GetSession(id string) (*Session, error) {
	q := fmt.Sprintf("SELECT id, created_at, active_strategy_id FROM mcr_sessions WHERE id = %s", s.placeholder(1))
	row := s.db.QueryRow(q, id)

	var sess Session
	var activeStrategy sql.NullString
	if err := row.Scan(&sess.ID, &sess.CreatedAt, &activeStrategy); err != nil {
		if err == sql.ErrNoRows {
			return nil, notFound(id)
		}
		return nil, err
	}
	sess.ActiveStrategyID = activeStrategy.String

	clauses, err := s.loadClauses(id)
	if err != nil {
		return nil, err
	}
	sess.Clauses = clauses
	return &sess, nil
}

func (s *SQLStore) loadClauses(id string) ([]string, error) {
	q := fmt.Sprintf("SELECT clause FROM mcr_clauses WHERE session_id = %s ORDER BY seq ASC", s.placeholder(1))
	rows, err := s.db.Query(q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clauses []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, rows.Err()
}

func (s *SQLStore) DeleteSession(id string) (bool, error) {
	q := fmt.Sprintf("DELETE FROM mcr_sessions WHERE id = %s", s.placeholder(1))
	res, err := s.db.Exec(q, id)
	if err != nil {
		return false, err
	}
	cq := fmt.Sprintf("DELETE FROM mcr_clauses WHERE session_id = %s", s.placeholder(1))
	if _, err := s.db.Exec(cq, id); err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLStore) ListSessions() ([]*Session, error) {
	rows, err := s.db.Query("SELECT id FROM mcr_sessions")
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()

	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		sess, err := s.GetSession(id)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *SQLStore) GetKnowledgeBase(id string) (string, error) {
	clauses, err := s.loadClauses(id)
	if err != nil {
		return "", err
	}
	if clauses == nil {
		if _, err := s.GetSession(id); err != nil {
			return "", err
		}
	}
	return JoinKnowledgeBase(clauses), nil
}

func (s *SQLStore) AddClauses(id string, clauses []string) error {
	if len(clauses) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxSeq int
	q := fmt.Sprintf("SELECT COALESCE(MAX(seq), -1) FROM mcr_clauses WHERE session_id = %s", s.placeholder(1))
	if err := tx.QueryRow(q, id).Scan(&maxSeq); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO mcr_clauses (session_id, seq, clause) VALUES (%s, %s, %s)",
		s.placeholder(1), s.placeholder(2), s.placeholder(3))
	for i, c := range clauses {
		if _, err := tx.Exec(insert, id, maxSeq+1+i, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetLexiconSummary(id string) (string, error) {
	clauses, err := s.loadClauses(id)
	if err != nil {
		return "", err
	}
	return lexiconSummary(clauses), nil
}

func (s *SQLStore) GetActiveStrategy(id string) (string, bool, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return "", false, err
	}
	if sess.ActiveStrategyID == "" {
		return "", false, nil
	}
	return sess.ActiveStrategyID, true, nil
}

func (s *SQLStore) SetActiveStrategy(id string, strategyID string) error {
	q := fmt.Sprintf("UPDATE mcr_sessions SET active_strategy_id = %s WHERE id = %s", s.placeholder(1), s.placeholder(2))
	res, err := s.db.Exec(q, strategyID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}
