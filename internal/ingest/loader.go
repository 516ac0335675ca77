package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/normalize"
	"github.com/okian/skillbudget/pkg/logger"
	"github.com/okian/skillbudget/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Default loader configuration constants.
const (
	defaultConcurrency  = 6
	defaultFetchTimeout = 10 * time.Second
)

// Outcome statuses.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Outcome reports how one skill type's document was ingested.
type Outcome struct {
	Type       model.SkillType `json:"type"`
	Status     string          `json:"status"`
	Shape      normalize.Shape `json:"shape,omitempty"`
	Groups     int             `json:"groups"`
	Skills     int             `json:"skills"`
	Message    string          `json:"message,omitempty"`
	DurationMS float64         `json:"duration_ms"`

	Err error `json:"-"`
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithConcurrency bounds how many documents are fetched at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithFetchTimeout bounds each fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// Loader fetches documents concurrently and commits them to a catalog.
type Loader struct {
	source      Source
	concurrency int
	timeout     time.Duration
	logger      logger.Logger
}

// NewLoader creates a Loader reading from src.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		source:      src,
		concurrency: defaultConcurrency,
		timeout:     defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get()
	}
	return l
}

type fetched struct {
	shape  normalize.Shape
	drafts []normalize.Draft
	start  time.Time
	err    error
}

// Load fetches and converts every type concurrently, then commits the
// results to cat in the order of types so the catalog layout does not
// depend on which fetch finished first. It returns once every fetch has
// settled; a failing type never affects the others.
func (l *Loader) Load(ctx context.Context, cat normalize.Appender, types []model.SkillType) []Outcome {
	results := make([]fetched, len(types))

	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, typ := range types {
		g.Go(func() error {
			results[i] = l.fetch(ctx, typ)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Outcome, len(types))
	for i, typ := range types {
		r := results[i]
		o := Outcome{Type: typ, Shape: r.shape, Err: r.err}
		switch {
		case r.err == nil:
			res := normalize.Commit(ctx, cat, typ, r.shape, r.drafts)
			o.Status = StatusOK
			o.Groups, o.Skills = res.Groups, res.Skills
			metrics.RecordIngestSkills(string(typ), string(r.shape), res.Skills)
			l.logger.Info(ctx, "skills loaded",
				logger.String("type", string(typ)),
				logger.String("shape", string(r.shape)),
				logger.Int("groups", res.Groups),
				logger.Int("skills", res.Skills),
			)
		case isWarning(r.err):
			o.Status = StatusWarning
			o.Message = r.err.Error()
			l.logger.Warn(ctx, "skill document skipped", logger.String("type", string(typ)), logger.Error(r.err))
		default:
			o.Status = StatusError
			o.Message = r.err.Error()
			metrics.RecordErrorByComponent("ingest", errorKind(r.err))
			l.logger.Error(ctx, "error loading skill document", logger.String("type", string(typ)), logger.Error(r.err))
		}
		o.DurationMS = float64(time.Since(r.start).Microseconds()) / 1000
		metrics.RecordIngestDocument(string(typ), o.Status)
		metrics.RecordIngestLatency(string(typ), o.DurationMS)
		out[i] = o
	}
	return out
}

func (l *Loader) fetch(ctx context.Context, typ model.SkillType) fetched {
	start := time.Now()
	fctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	doc, err := l.source.Fetch(fctx, typ)
	if err != nil {
		return fetched{start: start, err: err}
	}
	shape, drafts, err := normalize.Convert(typ, doc)
	if errors.Is(err, normalize.ErrInvalidDocument) {
		err = errors.Join(ErrDecode, err)
	}
	return fetched{shape: shape, drafts: drafts, start: start, err: err}
}

func isWarning(err error) bool {
	return errors.Is(err, ErrNoDocument) || normalize.IsWarning(err)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "transport"
	}
}
