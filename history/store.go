// Package history records conversions in SQLite so they can be listed later.
package history

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/sym"
	"github.com/teranos/hiero/translit"
)

// Where a conversion came from
const (
	SourceCLI    = "cli"
	SourceREPL   = "repl"
	SourceBatch  = "batch"
	SourceServer = "server"
	SourceMCP    = "mcp"
)

// Entry is one recorded conversion.
type Entry struct {
	ID           int64     `json:"id"`
	Input        string    `json:"input"`
	Output       string    `json:"output"`
	Unsupported  []string  `json:"unsupported,omitempty"`
	TableVersion string    `json:"table_version"`
	Source       string    `json:"source"`
	RunID        string    `json:"run_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEntry builds an entry for a conversion made with the current tables.
func NewEntry(input, output, source string) Entry {
	_, unsupported := translit.Validate(input)
	return Entry{
		Input:        input,
		Output:       output,
		Unsupported:  translit.Unsupported(unsupported),
		TableVersion: sym.TableVersion,
		Source:       source,
	}
}

// Store reads and writes the conversions table.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB, l *zap.SugaredLogger) *Store {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &Store{db: db, logger: l}
}

// Record inserts e. Zero CreatedAt is set to now; the run ID is taken from
// ctx when e carries none.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.Source == "" {
		return 0, errors.NewInvalidRequestError("history entry needs a source")
	}
	if e.TableVersion == "" {
		e.TableVersion = sym.TableVersion
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.RunID == "" {
		e.RunID = logger.RunIDFromContext(ctx)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (input, output, unsupported, table_version, source, run_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Input, e.Output, strings.Join(e.Unsupported, ""), e.TableVersion, e.Source, e.RunID, e.CreatedAt,
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to record conversion")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read conversion id")
	}

	logger.FromContext(ctx, s.logger).Debugw("Recorded conversion",
		logger.FieldSource, e.Source,
		logger.FieldSize, len(e.Input),
		logger.FieldTableVersion, e.TableVersion,
	)
	return id, nil
}

// Recent returns up to limit entries, newest first. A non-empty constraint
// (">=1.0.0", "~1.2") keeps only entries whose table version satisfies it;
// entries with an unparseable version never match a constraint. Constraints
// are resolved to the matching versions first so the limit stays in SQL.
func (s *Store) Recent(ctx context.Context, limit int, constraint string) ([]Entry, error) {
	if limit <= 0 {
		return nil, errors.NewInvalidRequestError("history limit must be positive")
	}

	var check *semver.Constraints
	if constraint != "" {
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidRequest, "invalid table version constraint %q: %v", constraint, err),
				`use a semver constraint such as ">=1.0.0"`,
			)
		}
		check = c
	}

	query := `
		SELECT id, input, output, unsupported, table_version, source, run_id, created_at
		FROM conversions`
	args := []interface{}{}
	if check != nil {
		versions, err := s.matchingVersions(ctx, check)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, nil
		}
		query += " WHERE table_version IN (?" + strings.Repeat(", ?", len(versions)-1) + ")"
		for _, v := range versions {
			args = append(args, v)
		}
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query history")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var unsupported string
		if err := rows.Scan(&e.ID, &e.Input, &e.Output, &unsupported, &e.TableVersion, &e.Source, &e.RunID, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan history row")
		}
		if unsupported != "" {
			e.Unsupported = strings.Split(unsupported, "")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate history")
	}
	return entries, nil
}

// Count returns the number of recorded conversions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversions").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to count history")
	}
	return n, nil
}

// matchingVersions returns the recorded table versions that satisfy c.
func (s *Store) matchingVersions(ctx context.Context, c *semver.Constraints) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT table_version FROM conversions")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query table versions")
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "failed to scan table version")
		}
		if matches(c, v) {
			versions = append(versions, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate table versions")
	}
	return versions, nil
}

func matches(c *semver.Constraints, version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return c.Check(v)
}
