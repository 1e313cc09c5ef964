package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stlalpha/linecraft/internal/clog"
	"github.com/stlalpha/linecraft/internal/lcconfig"
	"github.com/stlalpha/linecraft/internal/tailtip"
)

// Registry aggregates Providers and dispatches pipelines over them: name
// resolution iterates providers in registration order and the first match
// wins, the same order-sensitive lookup the teacher's dispatcher/executor
// split embodies for GOTO/RUN/DOOR commands, generalized here into an open
// set of providers instead of a fixed switch.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	traceFn   func(error)

	pool *workerPool
	jobs *jobTable
}

// New returns an empty Registry configured from cfg.
func New(cfg lcconfig.Config) *Registry {
	return &Registry{
		traceFn: func(err error) { clog.Error("registry: %v", err) },
		jobs:    newJobTable(time.Duration(cfg.BackgroundJobRetention)),
		pool:    newWorkerPool(3),
	}
}

// Register adds a provider. Providers are consulted in registration order
// for name resolution; the first to report Has(name) == true wins.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	r.providers = append(r.providers, p)
	r.mu.Unlock()
}

// resolveAlias maps name through the first provider whose AliasMap
// recognizes it, or returns name unchanged.
func (r *Registry) resolveAlias(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if canon, ok := p.AliasMap()[name]; ok {
			return canon
		}
	}
	return name
}

func (r *Registry) findProvider(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if p.Has(name) {
			return p, true
		}
	}
	return nil, false
}

// Has reports whether name, resolved through aliasing, is hosted by any
// registered provider.
func (r *Registry) Has(name string) bool {
	_, ok := r.findProvider(r.resolveAlias(name))
	return ok
}

// CommandOf resolves name through aliasing to its canonical command name.
func (r *Registry) CommandOf(name string) string {
	return r.resolveAlias(name)
}

// Describe resolves name, through aliasing, to whichever provider hosts it,
// and returns that provider's description record for it (or nil if name is
// unknown or its provider has none). It is the tailtip.Resolver a caller
// wires the description engine with.
func (r *Registry) Describe(name string) *tailtip.CommandDescription {
	canonical := r.resolveAlias(name)
	p, ok := r.findProvider(canonical)
	if !ok {
		return nil
	}
	return p.Description([]string{canonical})
}

// CompileCompleters unions every provider's compiled completers, then
// materializes alias entries so tab-completion over an alias proposes the
// canonical command's completions.
func (r *Registry) CompileCompleters() map[string][]Completer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]Completer)
	for _, p := range r.providers {
		for name, completers := range p.CompileCompleters() {
			out[name] = append(out[name], completers...)
		}
	}
	for _, p := range r.providers {
		for alias, canon := range p.AliasMap() {
			out[alias] = append(out[alias], out[canon]...)
		}
	}
	return out
}

// Trace routes a non-fatal provider failure through the registry's logging
// sink without aborting the pipeline; it is also the hook lifecycle method
// spec.md §4.4 names.
func (r *Registry) Trace(err error) {
	if err == nil {
		return
	}
	if r.traceFn != nil {
		r.traceFn(err)
	}
}

// Initialize runs each non-empty, non-comment line of script as a pipeline
// against a discard-output session. An error aborts the remaining lines.
func (r *Registry) Initialize(script string) error {
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ctx := WithSession(context.Background(), &Session{Stdout: io.Discard, Stderr: io.Discard})
		if _, err := r.Execute(ctx, line); err != nil {
			return fmt.Errorf("registry: initialize: %w", err)
		}
	}
	return nil
}

// Cleanup closes every provider that implements Closer, tracing any error
// rather than aborting the sweep.
func (r *Registry) Cleanup() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if c, ok := p.(Closer); ok {
			if err := c.Close(); err != nil {
				r.Trace(err)
			}
		}
	}
}

// Close runs Cleanup and stops the background job janitor. Idempotent.
func (r *Registry) Close() error {
	if r.jobs == nil {
		return nil
	}
	r.Cleanup()
	r.jobs.close()
	r.jobs = nil
	return nil
}

// Execute parses line into a pipeline and dispatches it, using the Session
// already carried on ctx (see WithSession). A trailing "&" schedules the
// pipeline onto the background worker pool and returns immediately with
// exit code 0.
func (r *Registry) Execute(ctx context.Context, line string) (int, error) {
	pipe, err := ParsePipeline(line)
	if err != nil {
		return -1, err
	}
	if pipe.Background {
		return r.dispatchBackground(ctx, pipe), nil
	}
	return r.run(ctx, pipe)
}

func (r *Registry) dispatchBackground(ctx context.Context, pipe *Pipeline) int {
	if r.jobs == nil {
		r.jobs = newJobTable(5 * time.Minute)
	}
	if r.pool == nil {
		r.pool = newWorkerPool(3)
	}
	job := r.jobs.add(pipe.summary())
	if sess, ok := CurrentSession(ctx); ok {
		sess.Foreground = job
	}
	r.pool.Go(func() {
		code, err := r.run(ctx, pipe)
		if err != nil {
			r.Trace(err)
		}
		job.finish(code, err)
	})
	return 0
}

// run executes pipe's stages sequentially by AND/OR/FLIP boundary, with
// each PIPE-connected run of stages executed concurrently as one segment.
func (r *Registry) run(ctx context.Context, pipe *Pipeline) (int, error) {
	stages := pipe.Stages
	lastCode := 0
	var pendingFlipArg string

	for i := 0; i < len(stages); {
		segEnd := i
		for segEnd < len(stages) && stages[segEnd].Op == OpPipe {
			segEnd++
		}
		seg := append([]Stage(nil), stages[i:segEnd+1]...)
		boundary := seg[len(seg)-1].Op
		target := seg[len(seg)-1].Target

		if pendingFlipArg != "" {
			seg[0].Args = append(append([]string(nil), seg[0].Args...), pendingFlipArg)
			pendingFlipArg = ""
		}

		var code int
		var captured string
		var err error

		switch boundary {
		case OpRedirect, OpAppend:
			code, captured, err = r.runSegment(ctx, seg)
			if err == nil {
				err = writeRedirect(target, captured, boundary == OpAppend)
			}
		case OpFlip:
			code, captured, err = r.runSegment(ctx, seg)
			pendingFlipArg = strings.TrimRight(captured, "\n")
		default:
			code, captured, err = r.runSegment(ctx, seg)
			if sess, ok := CurrentSession(ctx); ok && sess.Stdout != nil {
				io.WriteString(sess.Stdout, captured)
			}
		}

		if err != nil {
			r.Trace(err)
			code = 1
		}
		lastCode = code
		if sess, ok := CurrentSession(ctx); ok {
			sess.LastExitCode = code
		}

		i = segEnd + 1
		switch boundary {
		case OpAnd:
			if code != 0 {
				return lastCode, nil
			}
		case OpOr:
			if code == 0 {
				return lastCode, nil
			}
		}
	}
	return lastCode, nil
}

// runSegment executes a PIPE-connected run of stages: a single stage reads
// the ambient session's stdin; more than one stage runs concurrently,
// chained stdout-to-stdin via io.Pipe. In both cases the final stage's
// stdout is captured and returned, for run to hand to REDIRECT/APPEND/FLIP
// or to copy to the session's stdout.
func (r *Registry) runSegment(ctx context.Context, seg []Stage) (int, string, error) {
	sess, _ := CurrentSession(ctx)
	var final bytes.Buffer

	if len(seg) == 1 {
		stageCtx := withStageIO(ctx, stdinOf(sess), &final)
		code, err := r.invokeStage(stageCtx, seg[0])
		return code, final.String(), err
	}

	readers := make([]io.Reader, len(seg))
	writers := make([]io.Writer, len(seg))
	closers := make([]*io.PipeWriter, len(seg)-1)

	readers[0] = stdinOf(sess)
	for i := 0; i < len(seg)-1; i++ {
		pr, pw := io.Pipe()
		writers[i] = pw
		readers[i+1] = pr
		closers[i] = pw
	}
	writers[len(seg)-1] = &final

	codes := make([]int, len(seg))
	errs := make([]error, len(seg))
	var wg sync.WaitGroup
	wg.Add(len(seg))
	for i := range seg {
		i := i
		go func() {
			defer wg.Done()
			if i < len(closers) {
				defer closers[i].Close()
			}
			stageCtx := withStageIO(ctx, readers[i], writers[i])
			codes[i], errs[i] = r.invokeStage(stageCtx, seg[i])
		}()
	}
	wg.Wait()

	var firstErr error
	for _, e := range errs {
		if e != nil && firstErr == nil {
			firstErr = e
		}
	}
	return codes[len(codes)-1], final.String(), firstErr
}

func (r *Registry) invokeStage(ctx context.Context, stage Stage) (code int, err error) {
	if len(stage.Args) == 0 {
		return 0, nil
	}
	name := stage.Args[0]
	canonical := r.resolveAlias(name)
	p, ok := r.findProvider(canonical)
	if !ok {
		return 127, fmt.Errorf("registry: unknown command %q", name)
	}
	defer func() {
		if rec := recover(); rec != nil {
			code, err = 1, fmt.Errorf("registry: command %q panicked: %v", canonical, rec)
		}
	}()
	return p.Invoke(ctx, canonical, stage.Args[1:])
}

func withStageIO(ctx context.Context, stdin io.Reader, stdout io.Writer) context.Context {
	sess, ok := CurrentSession(ctx)
	var clone Session
	if ok {
		clone = *sess
	}
	clone.Stdin = stdin
	clone.Stdout = stdout
	return WithSession(ctx, &clone)
}

func writeRedirect(path, content string, appendMode bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("registry: opening redirect target %q: %w", path, err)
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}
