package simrun

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
)

// RunBatch runs jobs with at most workers in flight (GOMAXPROCS when
// workers <= 0). Results come back in input order. A failed job does not
// stop the others: its Result carries the error, and the joined errors of
// all failed jobs are returned. Cancelling ctx stops jobs not yet started.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job, workers int) ([]*Result, error) {
	if err := checkRunDirs(r, jobs); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	bar := pb.New(len(jobs))
	bar.ShowTimeLeft = false
	if r.Progress != nil {
		bar.Output = r.Progress
	} else {
		bar.NotPrint = true
	}
	bar.Start()

	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			defer bar.Increment()
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", job.name(), err)
				results[i] = &Result{Job: job, Err: errs[i].Error()}
				return nil
			}
			res, err := r.Run(ctx, job)
			if res == nil {
				res = &Result{Job: job}
			}
			if err != nil {
				res.Err = err.Error()
				errs[i] = err
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if r.Progress != nil {
		bar.FinishPrint(fmt.Sprintf("\tFinished %d runs, %d failed", len(jobs), failed))
	} else {
		bar.Finish()
	}
	logrus.WithField("component", "simrun").Infof("Batch of %d runs finished, %d failed.", len(jobs), failed)
	return results, errors.Join(errs...)
}

// checkRunDirs rejects batches where two jobs would share a run directory.
func checkRunDirs(r *Runner, jobs []Job) error {
	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		if err := validateJob(job); err != nil {
			return err
		}
		dir := r.runDir(job)
		if prev, dup := seen[dir]; dup {
			return fmt.Errorf("%w: jobs %s and %s share run directory %s", ErrInvalidJob, prev, job.name(), dir)
		}
		seen[dir] = job.name()
	}
	return nil
}
