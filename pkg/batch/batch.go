package batch

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPartial  Status = "partial"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// FetchFunc retrieves the records for one chunk of identifiers.
type FetchFunc[R any] func(ctx context.Context, ids []string) ([]R, error)

// Job retrieves records for a large identifier set in bounded,
// strictly sequential chunks. Chunks already fetched survive a later
// chunk's failure; the job only stops issuing further requests.
type Job[R any] struct {
	IDs       []string
	ChunkSize int
	Results   []R
	Status    Status
	Err       error

	limiter *rate.Limiter
}

// New builds a pending job over ids with the given chunk size.
func New[R any](ids []string, chunkSize int) *Job[R] {
	return &Job[R]{
		IDs:       ids,
		ChunkSize: chunkSize,
		Results:   make([]R, 0, len(ids)),
		Status:    StatusPending,
	}
}

// WithLimiter gates each chunk call through lim. Nil disables gating.
func (j *Job[R]) WithLimiter(lim *rate.Limiter) *Job[R] {
	j.limiter = lim
	return j
}

// Run issues one fetch per chunk in order and accumulates results.
// On a chunk error the job keeps everything fetched so far and reports
// StatusPartial, or StatusFailed when nothing was accumulated.
func (j *Job[R]) Run(ctx context.Context, fetch FetchFunc[R]) error {
	if j.ChunkSize <= 0 {
		j.Status = StatusFailed
		j.Err = fmt.Errorf("invalid chunk size %d", j.ChunkSize)
		return j.Err
	}

	for start := 0; start < len(j.IDs); start += j.ChunkSize {
		end := start + j.ChunkSize
		if end > len(j.IDs) {
			end = len(j.IDs)
		}

		if j.limiter != nil {
			if err := j.limiter.Wait(ctx); err != nil {
				j.fail(err)
				return j.Err
			}
		}

		results, err := fetch(ctx, j.IDs[start:end])
		if err != nil {
			j.fail(err)
			return j.Err
		}

		j.Results = append(j.Results, results...)
	}

	j.Status = StatusComplete
	return nil
}

func (j *Job[R]) fail(err error) {
	j.Err = err
	if len(j.Results) > 0 {
		j.Status = StatusPartial
		return
	}
	j.Status = StatusFailed
}

// Partial reports whether the job holds a usable but incomplete set.
func (j *Job[R]) Partial() bool {
	return j.Status == StatusPartial
}
