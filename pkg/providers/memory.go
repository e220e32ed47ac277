package providers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// Memory stores facts in a sqlite database. Setup fails when the database
// cannot be opened, which demotes the catalog to the fallback-default tier.
type Memory struct {
	dbPath string

	mu sync.Mutex
	db *sql.DB
}

// Fact is one stored memory
type Fact struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMemory creates the memory provider for the database at dbPath
func NewMemory(dbPath string) *Memory {
	return &Memory{dbPath: dbPath}
}

func (m *Memory) Name() string            { return "memory" }
func (m *Memory) RequiresResources() bool { return true }

// Setup opens the database; calling it again reuses the open handle
func (m *Memory) Setup(ctx context.Context) ([]catalog.RawTool, error) {
	if err := m.open(ctx); err != nil {
		return nil, err
	}

	return []catalog.RawTool{
		{
			Name:        "memory_store",
			Description: "Store a fact in long-term memory",
			Parameters: json.RawMessage(`[
				{"name": "content", "type": "string", "description": "Fact to remember", "required": true},
				{"name": "tags", "type": "array", "description": "Optional tags"}
			]`),
			Handler: toolexecutor.HandlerFunc(m.store),
		},
		{
			Name:        "memory_recall",
			Description: "Recall stored facts matching a query, newest first",
			Parameters: json.RawMessage(`{
				"query": {"type": "string", "description": "Text to search for", "required": true},
				"limit": {"type": "integer", "description": "Maximum facts returned", "default": 5}
			}`),
			Handler: toolexecutor.HandlerFunc(m.recall),
		},
		{
			Name:        "memory_forget",
			Description: "Delete a stored fact by id",
			Parameters: json.RawMessage(`{
				"id": {"type": "string", "description": "Fact id", "required": true}
			}`),
			Handler: toolexecutor.HandlerFunc(m.forget),
		},
	}, nil
}

func (m *Memory) open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return nil
	}
	if m.dbPath == "" {
		return errors.New("database path is required")
	}
	if m.dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(m.dbPath), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", m.dbPath+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if m.dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS facts (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_facts_created ON facts(created_at);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	m.db = db
	log.Info().Str("path", m.dbPath).Msg("Memory database opened")
	return nil
}

// Close releases the database
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

func (m *Memory) conn() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil, toolexecutor.Unconfigured("memory database is not open; check catalog.database_path")
	}
	return m.db, nil
}

func (m *Memory) store(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	content, err := requiredString(params, "content")
	if err != nil {
		return nil, err
	}
	db, err := m.conn()
	if err != nil {
		return nil, err
	}

	tags := stringsParam(params, "tags")
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	fact := Fact{
		ID:        uuid.New().String(),
		Content:   content,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO facts (id, content, tags, created_at) VALUES (?, ?, ?, ?)`,
		fact.ID, fact.Content, string(tagsJSON), fact.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store fact: %w", err)
	}
	return fact, nil
}

func (m *Memory) recall(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	query, err := requiredString(params, "query")
	if err != nil {
		return nil, err
	}
	limit := intParam(params, "limit", 5)
	if limit < 1 {
		limit = 5
	}
	db, err := m.conn()
	if err != nil {
		return nil, err
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := db.QueryContext(ctx,
		`SELECT id, content, tags, created_at FROM facts
		 WHERE lower(content) LIKE ? ESCAPE '\' OR lower(tags) LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to recall facts: %w", err)
	}
	defer rows.Close()

	facts := []Fact{}
	for rows.Next() {
		var (
			f        Fact
			tagsJSON string
			created  int64
		)
		if err := rows.Scan(&f.ID, &f.Content, &tagsJSON, &created); err != nil {
			return nil, fmt.Errorf("failed to read fact: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
			f.Tags = []string{}
		}
		f.CreatedAt = time.Unix(0, created).UTC()
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to recall facts: %w", err)
	}

	return map[string]interface{}{
		"query": query,
		"facts": facts,
		"count": len(facts),
	}, nil
}

func (m *Memory) forget(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	id, err := requiredString(params, "id")
	if err != nil {
		return nil, err
	}
	db, err := m.conn()
	if err != nil {
		return nil, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM facts WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to forget fact: %w", err)
	}
	n, _ := res.RowsAffected()
	return map[string]interface{}{"id": id, "deleted": n > 0}, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
