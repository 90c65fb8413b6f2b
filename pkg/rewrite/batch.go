package rewrite

import (
	"context"
	"sync"

	"github.com/gitrdm/gosaturate/internal/parallel"
)

// BatchTask is one independent saturation job: a start term, the rule set
// to close it under, and per-task bounds.
type BatchTask struct {
	Term    Expr
	Rules   []*Rule
	Options SaturateOptions
}

// SaturateAll runs a batch of independent saturation tasks concurrently on
// a bounded worker pool and returns their results in input order. Each task
// runs the ordinary synchronous engine over state it alone owns, so no
// locking is needed around terms or seen-sets.
//
// workers <= 0 selects one worker per CPU core. The context cancels job
// submission: on cancellation the already-submitted tasks finish and the
// context error is returned alongside the partially filled results.
func SaturateAll(ctx context.Context, tasks []BatchTask, workers int) ([][]Expr, error) {
	results := make([][]Expr, len(tasks))
	if len(tasks) == 0 {
		return results, nil
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	for i, task := range tasks {
		i, task := i, task
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = SaturateWith(task.Term, task.Rules, task.Options)
		})
		if err != nil {
			wg.Done() // the job never ran
			wg.Wait()
			return results, err
		}
	}
	wg.Wait()
	return results, nil
}
