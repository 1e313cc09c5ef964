package registry

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job records one background pipeline dispatch (the "&" suffix), so a
// foreground command can report on it later.
type Job struct {
	ID        int64
	Line      string
	StartedAt time.Time

	Done chan struct{}

	mu         sync.Mutex
	exitCode   int
	err        error
	finishedAt time.Time
}

// Wait blocks until the job completes and returns its exit code and error.
func (j *Job) Wait() (int, error) {
	<-j.Done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.exitCode, j.err
}

func (j *Job) finish(code int, err error) {
	j.mu.Lock()
	j.exitCode = code
	j.err = err
	j.finishedAt = time.Now()
	j.mu.Unlock()
	close(j.Done)
}

// jobTable tracks background jobs and periodically reaps completed ones
// past a retention window, grounded on the teacher's
// internal/scheduler.Scheduler, which runs a cron.Cron to fire scheduled
// BBS events; here the same cron instance instead runs a periodic sweep of
// a table, since linecraft has no recurring-event domain of its own.
type jobTable struct {
	mu        sync.Mutex
	jobs      map[int64]*Job
	nextID    int64
	retention time.Duration
	janitor   *cron.Cron
}

func newJobTable(retention time.Duration) *jobTable {
	if retention <= 0 {
		retention = 5 * time.Minute
	}
	jt := &jobTable{jobs: make(map[int64]*Job), retention: retention}
	jt.janitor = cron.New(cron.WithSeconds())
	jt.janitor.AddFunc("*/30 * * * * *", jt.reap)
	jt.janitor.Start()
	return jt
}

func (jt *jobTable) reap() {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	now := time.Now()
	for id, j := range jt.jobs {
		select {
		case <-j.Done:
			j.mu.Lock()
			finishedAt := j.finishedAt
			j.mu.Unlock()
			if now.Sub(finishedAt) > jt.retention {
				delete(jt.jobs, id)
			}
		default:
		}
	}
}

func (jt *jobTable) add(line string) *Job {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	jt.nextID++
	j := &Job{ID: jt.nextID, Line: line, StartedAt: time.Now(), Done: make(chan struct{})}
	jt.jobs[j.ID] = j
	return j
}

func (jt *jobTable) list() []*Job {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	out := make([]*Job, 0, len(jt.jobs))
	for _, j := range jt.jobs {
		out = append(out, j)
	}
	return out
}

func (jt *jobTable) close() {
	jt.janitor.Stop()
}

// workerPool bounds background pipeline concurrency with a buffered-channel
// semaphore, grounded on the teacher's Scheduler.concurrencySem.
type workerPool struct {
	sem chan struct{}
}

func newWorkerPool(maxConcurrent int) *workerPool {
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	return &workerPool{sem: make(chan struct{}, maxConcurrent)}
}

// Go runs fn on a new goroutine once a slot is free; it blocks the caller
// until a slot is acquired, which bounds how many background pipelines may
// run at once without bounding how many may be queued.
func (wp *workerPool) Go(fn func()) {
	wp.sem <- struct{}{}
	go func() {
		defer func() { <-wp.sem }()
		fn()
	}()
}
