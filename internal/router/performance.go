// Package router implements the Input Router: keyword and semantic
// variants that recommend a strategy hash by consulting a read-only
// Performance DB of prior run metrics.
package router

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/automenta/mcr/internal/logging"
)

// PerformanceRow is one observation of a strategy's behavior on a prior
// evaluation case.
type PerformanceRow struct {
	StrategyHash string
	LLMModelID   string
	InputType    string
	Metrics      map[string]interface{}
	LatencyMS    int
	Cost         map[string]interface{}
}

// PerformanceDB is the read-only interface the core relies on; the
// core never writes this table.
type PerformanceDB interface {
	// QueryByModelAndType returns every row matching modelID (or rows
	// with no model recorded) and inputType.
	QueryByModelAndType(modelID, inputType string) ([]PerformanceRow, error)
}

// SQLPerformanceDB reads performance_results from a database/sql
// connection, grounded on the same SQLite/Postgres driver pair the
// Session Store's SQLStore uses.
type SQLPerformanceDB struct {
	db  *sql.DB
	log *logging.Logger
}

// NewSQLPerformanceDB opens dsn with the named driver.
func NewSQLPerformanceDB(driver, dsn string) (*SQLPerformanceDB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return &SQLPerformanceDB{db: db, log: logging.Get(logging.CategoryRouter)}, nil
}

func (p *SQLPerformanceDB) QueryByModelAndType(modelID, inputType string) ([]PerformanceRow, error) {
	rows, err := p.db.Query(
		`SELECT strategy_hash, llm_model_id, input_type, metrics, latency_ms, cost
		 FROM performance_results
		 WHERE (llm_model_id = ? OR llm_model_id IS NULL OR llm_model_id = '') AND input_type = ?`,
		modelID, inputType,
	)
	if err != nil {
		// Local recovery per the router's error-handling rule: DB
		// failures are swallowed here, not surfaced, so the caller falls
		// back to system default.
		p.log.Warn("performance db query failed: %v", err)
		return nil, nil
	}
	defer rows.Close()

	var out []PerformanceRow
	for rows.Next() {
		var row PerformanceRow
		var modelID sql.NullString
		var metricsJSON, costJSON sql.NullString
		if err := rows.Scan(&row.StrategyHash, &modelID, &row.InputType, &metricsJSON, &row.LatencyMS, &costJSON); err != nil {
			p.log.Warn("performance db row scan failed: %v", err)
			continue
		}
		row.LLMModelID = modelID.String
		if metricsJSON.Valid {
			_ = json.Unmarshal([]byte(metricsJSON.String), &row.Metrics)
		}
		if costJSON.Valid {
			_ = json.Unmarshal([]byte(costJSON.String), &row.Cost)
		}
		out = append(out, row)
	}
	return out, nil
}

// MemoryPerformanceDB is a simple in-memory PerformanceDB used by tests
// and by deployments with no persisted history yet.
type MemoryPerformanceDB struct {
	Rows []PerformanceRow
}

func (m *MemoryPerformanceDB) QueryByModelAndType(modelID, inputType string) ([]PerformanceRow, error) {
	var out []PerformanceRow
	for _, r := range m.Rows {
		if r.InputType != inputType {
			continue
		}
		if r.LLMModelID != "" && r.LLMModelID != modelID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
