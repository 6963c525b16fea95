package app

import (
	"context"
	"sync"
)

// ItemError ties a failed write to the entity it was for.
type ItemError struct {
	ID  string
	Err error
}

// BulkReport is the per-item outcome of a bulk operation. Bulk operations
// are not atomic: Succeeded entries are already applied to the cache even
// when Failed is non-empty.
type BulkReport struct {
	Succeeded []string
	Failed    []ItemError
	Skipped   []string
}

func (r BulkReport) OK() bool { return len(r.Failed) == 0 }

type writeTask struct {
	id  string
	run func(ctx context.Context) error
}

// runBatch issues independent writes concurrently and waits for every one of
// them, collecting per-item outcomes in task order. A failing item never
// cancels its siblings.
func runBatch(ctx context.Context, tasks []writeTask) (succeeded []string, failed []ItemError) {
	results := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t writeTask) {
			defer wg.Done()
			results[i] = t.run(ctx)
		}(i, t)
	}
	wg.Wait()

	for i, t := range tasks {
		if results[i] != nil {
			failed = append(failed, ItemError{ID: t.id, Err: results[i]})
		} else {
			succeeded = append(succeeded, t.id)
		}
	}
	return succeeded, failed
}
