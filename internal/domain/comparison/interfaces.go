package comparison

import "context"

// Repository persists completed comparisons.
type Repository interface {
	Save(ctx context.Context, c *Comparison) error
	Get(ctx context.Context, id string) (*Comparison, error)
	List(ctx context.Context, opts ListOptions) ([]Comparison, error)
}
