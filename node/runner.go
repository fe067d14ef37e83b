package node

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

// Outcome is the host-side view of one validation.
type Outcome struct {
	RunID    string
	ExitCode int8
	Result   *script.Result
	Err      error
}

// Runner executes validations with a fixed fee table source. Every Run builds its
// own state, so one Runner may be shared across goroutines.
type Runner struct {
	tables script.FeeTableSource
	hasher crypto.Hasher
	log    *zap.Logger
}

func NewRunner(tables script.FeeTableSource, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{tables: tables, hasher: crypto.CKBHasher{}, log: log}
}

func (r *Runner) Run(argv [][]byte, src script.WitnessSource) Outcome {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.Stringer("fee_table", r.tables))

	res, err := script.Verify(argv, src, script.Options{
		FeeTableSource: r.tables,
		Hasher:         r.hasher,
		Logger:         log,
	})
	out := Outcome{RunID: runID, ExitCode: script.ExitCode(err), Result: res, Err: err}
	if err != nil {
		log.Warn("validation rejected", zap.Int8("exit_code", out.ExitCode), zap.Error(err))
		return out
	}
	log.Info("validation accepted",
		zap.String("action", string(res.Action)),
		zap.Int("records", len(res.Records)),
		zap.Uint64("total_shannon", res.TotalCKB),
	)
	return out
}

// Job is one queued validation for RunBatch.
type Job struct {
	Argv      [][]byte
	Witnesses script.WitnessSource
}

// RunBatch validates jobs with at most workers in flight. Outcomes keep the job
// order. Rejections are reported per job; only cancellation fails the batch.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.Run(job.Argv, job.Witnesses)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
