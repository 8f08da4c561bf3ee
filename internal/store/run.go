package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const runsTable = "evaluation_runs"

// Outcome is how an evaluation ended.
type Outcome string

const (
	// OutcomeClassified: score and risk class both produced.
	OutcomeClassified Outcome = "classified"
	// OutcomeDegraded: the classifier was unavailable; score only.
	OutcomeDegraded Outcome = "degraded"
	// OutcomeIntegrityFault: the classifier returned a class with no
	// recommendation.
	OutcomeIntegrityFault Outcome = "integrity_fault"
)

// Run is one anonymised evaluation record.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ModelID   string    `json:"model_id,omitempty"`
	Score     float64   `json:"score"`
	Band      string    `json:"band"`
	Class     *int      `json:"risk_class"` // nil when no class was produced
	Label     string    `json:"label,omitempty"`
	Outcome   Outcome   `json:"outcome"`
}

// Stats aggregates the run log.
type Stats struct {
	Total     int
	MeanScore float64
	ByOutcome map[Outcome]int
	ByClass   map[int]int
}

// RunRepo manages the evaluation run log.
type RunRepo interface {
	// Append stores a run.
	Append(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Stats aggregates every stored run.
	Stats(ctx context.Context) (*Stats, error)
}

type runRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *runRepo) Append(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("append run: empty id")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	var class any
	if run.Class != nil {
		class = int64(*run.Class)
	}

	query, args := builder().
		Insert(runsTable).
		Columns("id", "created_at", "model_id", "score", "band", "risk_class", "label", "outcome").
		Values(run.ID, run.CreatedAt.UTC().UnixNano(), run.ModelID, run.Score, run.Band, class, run.Label, string(run.Outcome)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]Run, error) {
	sel := builder().
		Select("id", "created_at", "model_id", "score", "band", "risk_class", "label", "outcome").
		From(entsql.Table(runsTable)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			created int64
			class   sql.NullInt64
			outcome string
		)
		if err := rows.Scan(&run.ID, &created, &run.ModelID, &run.Score, &run.Band, &class, &run.Label, &outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt = time.Unix(0, created).UTC()
		run.Outcome = Outcome(outcome)
		if class.Valid {
			c := int(class.Int64)
			run.Class = &c
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *runRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByOutcome: make(map[Outcome]int),
		ByClass:   make(map[int]int),
	}

	query, args := builder().
		Select(entsql.Count("*"), entsql.Avg("score")).
		From(entsql.Table(runsTable)).
		Query()
	var mean sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &mean); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	stats.MeanScore = mean.Float64

	query, args = builder().
		Select("outcome", entsql.Count("*")).
		From(entsql.Table(runsTable)).
		GroupBy("outcome").
		Query()
	if err := r.groupCounts(ctx, query, args, func(rows *sql.Rows) error {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return err
		}
		stats.ByOutcome[Outcome(outcome)] = n
		return nil
	}); err != nil {
		return nil, fmt.Errorf("count outcomes: %w", err)
	}

	query, args = builder().
		Select("risk_class", entsql.Count("*")).
		From(entsql.Table(runsTable)).
		Where(entsql.NotNull("risk_class")).
		GroupBy("risk_class").
		Query()
	if err := r.groupCounts(ctx, query, args, func(rows *sql.Rows) error {
		var class, n int
		if err := rows.Scan(&class, &n); err != nil {
			return err
		}
		stats.ByClass[class] = n
		return nil
	}); err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}

	return stats, nil
}

func (r *runRepo) groupCounts(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
