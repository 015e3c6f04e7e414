package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/repository"
)

// ComparisonRepository implements comparison.Repository for SQLite
type ComparisonRepository struct {
	db *DB
}

// NewComparisonRepository creates a new ComparisonRepository
func NewComparisonRepository(db *DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

const comparisonColumns = `
	id, name, label_a, label_b, event_measure, total_measure,
	event_a, total_a, event_b, total_b,
	proportion_a, proportion_b, pooled_proportion, standard_error,
	z_score, p_value, alpha, significant, source, created_at`

// Save inserts a completed comparison
func (r *ComparisonRepository) Save(ctx context.Context, c *comparison.Comparison) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO comparisons (` + comparisonColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.LabelA,
		c.LabelB,
		c.Event,
		c.Total,
		c.GroupA.EventCount,
		c.GroupA.TotalCount,
		c.GroupB.EventCount,
		c.GroupB.TotalCount,
		c.Result.ProportionA,
		c.Result.ProportionB,
		c.Result.PooledProportion,
		c.Result.StandardError,
		c.Result.ZScore,
		c.Result.PValue,
		c.Result.Alpha,
		c.Result.Significant,
		nullString(c.Source),
		createdAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("comparison %s: %w", c.ID, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to save comparison: %w", err)
	}

	c.CreatedAt = createdAt
	return nil
}

// Get retrieves a comparison by ID
func (r *ComparisonRepository) Get(ctx context.Context, id string) (*comparison.Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM comparisons WHERE id = ?`

	c, err := scanComparison(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comparison: %w", err)
	}
	return c, nil
}

// List returns comparisons matching the given filters, newest first
func (r *ComparisonRepository) List(ctx context.Context, opts comparison.ListOptions) ([]comparison.Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM comparisons`

	args := []interface{}{}
	conditions := []string{}

	if opts.Name != "" {
		conditions = append(conditions, "name = ?")
		args = append(args, opts.Name)
	}
	if opts.Significant != nil {
		conditions = append(conditions, "significant = ?")
		args = append(args, *opts.Significant)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var out []comparison.Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		out = append(out, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comparison rows: %w", err)
	}

	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComparison(s scanner) (*comparison.Comparison, error) {
	var c comparison.Comparison
	var source sql.NullString
	if err := s.Scan(
		&c.ID,
		&c.Name,
		&c.LabelA,
		&c.LabelB,
		&c.Event,
		&c.Total,
		&c.GroupA.EventCount,
		&c.GroupA.TotalCount,
		&c.GroupB.EventCount,
		&c.GroupB.TotalCount,
		&c.Result.ProportionA,
		&c.Result.ProportionB,
		&c.Result.PooledProportion,
		&c.Result.StandardError,
		&c.Result.ZScore,
		&c.Result.PValue,
		&c.Result.Alpha,
		&c.Result.Significant,
		&source,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if source.Valid {
		c.Source = source.String
	}
	return &c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
