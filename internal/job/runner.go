package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// Result reports one finished job
type Result struct {
	Job      string
	Output   string
	Steps    int
	Tables   int
	Duration time.Duration
}

// Runner builds documents from jobs. Each job gets its own Manager, so jobs
// can run concurrently.
type Runner struct {
	config      *docmgr.Config
	logger      *zap.Logger
	concurrency int
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithConfig sets the document configuration used by every job
func WithConfig(config *docmgr.Config) RunnerOption {
	return func(r *Runner) {
		r.config = config
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency limits how many jobs RunAll builds at once. Default is 4.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRunner creates a Runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{concurrency: 4}
	for _, opt := range opts {
		opt(r)
	}
	if r.config == nil {
		r.config = docmgr.GetGlobalConfig()
	}
	if r.logger == nil {
		r.logger = docmgr.GetLogger()
	}
	return r
}

// Run applies the job's steps in order and saves the document. Cancellation
// is checked before every step; nothing is saved after a failure.
func (r *Runner) Run(ctx context.Context, job *Job) (*Result, error) {
	start := time.Now()
	logger := r.logger.With(zap.String("job", job.path))

	opts := []docmgr.Option{docmgr.WithConfig(r.config), docmgr.WithLogger(logger)}
	var (
		mgr *docmgr.Manager
		err error
	)
	if job.Input != "" {
		mgr, err = docmgr.Open(job.resolve(job.Input), opts...)
	} else {
		mgr, err = docmgr.New(opts...)
	}
	if err != nil {
		return nil, err
	}

	for i, step := range job.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.apply(job, mgr); err != nil {
			return nil, docmgr.WithContext(err, "job step", map[string]interface{}{
				"job":  job.path,
				"step": i,
				"kind": step.Kind(),
			})
		}
		logger.Debug("Applied step", zap.Int("step", i), zap.String("kind", step.Kind()))
	}

	output := job.resolve(job.Output)
	if err := mgr.Save(output); err != nil {
		return nil, err
	}

	result := &Result{
		Job:      job.path,
		Output:   output,
		Steps:    len(job.Steps),
		Tables:   mgr.NumTables(),
		Duration: time.Since(start),
	}
	logger.Info("Built document",
		zap.String("output", output),
		zap.Int("steps", result.Steps),
		zap.Duration("elapsed", result.Duration))
	return result, nil
}

// RunAll loads and builds every job file concurrently. A failing job does not
// stop the others; failures are returned together as a *docmgr.MultiError.
// Results keep the order of paths and are nil for failed jobs.
func (r *Runner) RunAll(ctx context.Context, paths []string) ([]*Result, error) {
	runID := uuid.New().String()
	logger := r.logger.With(zap.String("run_id", runID))
	logger.Info("Starting build",
		zap.Int("jobs", len(paths)),
		zap.Int("concurrency", r.concurrency))

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			job, err := Load(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			runner := *r
			runner.logger = logger
			result, err := runner.Run(gctx, job)
			if err != nil {
				logger.Warn("Job failed", zap.String("job", path), zap.Error(err))
				errs[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	// Workers never return errors, so Wait only waits
	_ = g.Wait()

	multi := docmgr.NewMultiError()
	for _, err := range errs {
		multi.Add(err)
	}
	logger.Info("Build finished",
		zap.Int("jobs", len(paths)),
		zap.Int("failed", multi.Len()))
	return results, multi.Err()
}
