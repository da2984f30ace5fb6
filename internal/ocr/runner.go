package ocr

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anime-shed/kyc-verifier-go/internal/logger"
)

// Runner fans recognition passes out over the worker pool and collects them
// back in mode order. Each pass runs exactly once; a failed or timed-out pass
// degrades the corpus instead of failing the request.
type Runner struct {
	engine      Engine
	pool        *WorkerPool
	passTimeout time.Duration
}

func NewRunner(engine Engine, pool *WorkerPool, passTimeout time.Duration) *Runner {
	return &Runner{
		engine:      engine,
		pool:        pool,
		passTimeout: passTimeout,
	}
}

// RunPasses recognizes imageBytes under every mode in modes. Results are
// slotted by mode index, so the returned slice (and any corpus built from it)
// is identical to sequential execution.
func (r *Runner) RunPasses(ctx context.Context, imageBytes []byte, modes []Mode) []Pass {
	passes := make([]Pass, len(modes))
	var wg sync.WaitGroup

	for i, mode := range modes {
		i, mode := i, mode
		wg.Add(1)
		r.pool.Submit(func() {
			defer wg.Done()
			passCtx, cancel := context.WithTimeout(ctx, r.passTimeout)
			defer cancel()

			text, err := r.engine.Recognize(passCtx, imageBytes, mode)
			passes[i] = Pass{Mode: mode, Text: text, Err: err}
			if err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"mode": mode.String(),
				}).Warn("Recognition pass failed, degrading to remaining passes")
			}
		})
	}

	wg.Wait()
	return passes
}
