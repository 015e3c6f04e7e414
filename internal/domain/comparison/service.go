package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/ztest"
	"github.com/rpggio/mortality/internal/repository"
)

// Service runs proportion comparisons and keeps their history.
type Service struct {
	repo   Repository
	logger *slog.Logger
	alpha  float64
	source string
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAlpha sets the default significance level.
func WithAlpha(alpha float64) Option {
	return func(s *Service) { s.alpha = alpha }
}

// WithSource tags recorded comparisons with the dataset they came from.
func WithSource(source string) Option {
	return func(s *Service) { s.source = source }
}

// NewService creates a comparison service. repo may be nil, in which case
// results are not recorded and history lookups fail with ErrHistoryDisabled.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		alpha:  ztest.DefaultAlpha,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompareRequest carries raw group counts.
type CompareRequest struct {
	Name   string
	LabelA string
	LabelB string
	GroupA ztest.GroupSummary
	GroupB ztest.GroupSummary
	Alpha  float64
}

// Compare tests two pre-aggregated groups.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*Comparison, error) {
	return s.compute(ctx, &Comparison{
		Name:   req.Name,
		LabelA: labelOr(req.LabelA, "A"),
		LabelB: labelOr(req.LabelB, "B"),
		GroupA: req.GroupA,
		GroupB: req.GroupB,
	}, req.Alpha)
}

// Run filters both groups from rows, sums their measures and tests them.
func (s *Service) Run(ctx context.Context, rows []dataset.Row, def Definition) (*Comparison, error) {
	event, total, err := resolveMeasures(def)
	if err != nil {
		return nil, err
	}

	rowsA := dataset.Filter(rows, def.GroupA.Selector)
	if len(rowsA) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyGroup, labelOr(def.GroupA.Label, "A"))
	}
	rowsB := dataset.Filter(rows, def.GroupB.Selector)
	if len(rowsB) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyGroup, labelOr(def.GroupB.Label, "B"))
	}

	c := &Comparison{
		Name:   def.Name,
		LabelA: labelOr(def.GroupA.Label, "A"),
		LabelB: labelOr(def.GroupB.Label, "B"),
		Event:  event.String(),
		Total:  total.String(),
		GroupA: dataset.Summarize(rowsA, event, total),
		GroupB: dataset.Summarize(rowsB, event, total),
		Source: s.source,
	}
	return s.compute(ctx, c, def.Alpha)
}

// RunAll runs every definition. Failed comparisons are logged and skipped;
// their errors are joined into the returned error.
func (s *Service) RunAll(ctx context.Context, rows []dataset.Row, defs []Definition) ([]Comparison, error) {
	var (
		out  []Comparison
		errs []error
	)
	for _, def := range defs {
		c, err := s.Run(ctx, rows, def)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("comparison skipped", "name", def.Name, "error", err)
			}
			errs = append(errs, fmt.Errorf("comparison %q: %w", def.Name, err))
			continue
		}
		out = append(out, *c)
	}
	return out, errors.Join(errs...)
}

// Get fetches a recorded comparison.
func (s *Service) Get(ctx context.Context, id string) (*Comparison, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrComparisonNotFound
		}
		return nil, fmt.Errorf("getting comparison: %w", err)
	}
	return c, nil
}

// List returns recorded comparisons, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Comparison, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	list, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing comparisons: %w", err)
	}
	return list, nil
}

func (s *Service) compute(ctx context.Context, c *Comparison, alpha float64) (*Comparison, error) {
	if alpha == 0 {
		alpha = s.alpha
	}
	if c.Event == "" {
		c.Event = dataset.COVIDDeaths.String()
	}
	if c.Total == "" {
		c.Total = dataset.TotalDeaths.String()
	}

	res, err := ztest.Compute(c.GroupA, c.GroupB, alpha)
	if err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	c.Result = res
	c.CreatedAt = s.now()

	if s.repo != nil {
		if err := s.repo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("recording comparison: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("comparison complete",
			"name", c.Name,
			"group_a", c.LabelA,
			"group_b", c.LabelB,
			"z", res.ZScore,
			"p", res.PValue,
			"significant", res.Significant,
		)
	}
	return c, nil
}

func resolveMeasures(def Definition) (dataset.Measure, dataset.Measure, error) {
	event, total := dataset.COVIDDeaths, dataset.TotalDeaths
	var err error
	if strings.TrimSpace(def.Event) != "" {
		if event, err = dataset.ParseMeasure(def.Event); err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if strings.TrimSpace(def.Total) != "" {
		if total, err = dataset.ParseMeasure(def.Total); err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if event == total {
		return 0, 0, fmt.Errorf("%w: event and total measures are both %q", ErrInvalidInput, event.String())
	}
	return event, total, nil
}

func labelOr(label, fallback string) string {
	if strings.TrimSpace(label) == "" {
		return fallback
	}
	return label
}
