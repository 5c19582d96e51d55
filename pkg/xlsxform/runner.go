package xlsxform

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ConvertArgs names the input template and the output document of one
// conversion request.
type ConvertArgs struct {
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
}

// Future is the pending outcome of a submitted conversion. It resolves
// exactly once.
type Future struct {
	done  chan struct{}
	once  sync.Once
	value int
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(value int, err error) {
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
	})
}

// Done is closed once the conversion has finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the conversion finishes or ctx is done. Context
// cancellation only stops the wait; the conversion keeps running.
func (f *Future) Wait(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-f.done:
		return f.value, f.err
	}
}

// Result returns the outcome. It must only be called after Done is closed.
func (f *Future) Result() (int, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
		return 0, fmt.Errorf("conversion still running")
	}
}

// Runner executes conversions on a bounded pool of goroutines, off the
// caller's goroutine.
type Runner struct {
	opts   Options
	pool   *pool.Pool
	logger *zap.Logger

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// NewRunner creates a runner with at most opts.Workers concurrent
// conversions.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:   opts,
		pool:   pool.New().WithMaxGoroutines(opts.workers()),
		logger: opts.logger().With(zap.String("component", "runner")),
	}
}

// Submit schedules a conversion and returns immediately. The returned
// future resolves with 1 on success or with the conversion error.
func (r *Runner) Submit(args ConvertArgs) *Future {
	fut := newFuture()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		fut.resolve(0, ErrRunnerClosed)
		return fut
	}

	r.pending.Add(1)
	// pool.Go blocks while every worker is busy, so hand off from a
	// separate goroutine.
	go func() {
		defer r.pending.Done()
		r.pool.Go(func() {
			r.run(args, fut)
		})
	}()
	return fut
}

func (r *Runner) run(args ConvertArgs, fut *Future) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Conversion panicked",
				zap.String("input", args.InputPath),
				zap.Any("panic", p),
			)
			fut.resolve(0, NewConversionError("run", args.InputPath, fmt.Errorf("panic: %v", p)))
		}
	}()

	if err := Convert(args.InputPath, args.OutputPath, r.opts); err != nil {
		fut.resolve(0, err)
		return
	}
	fut.resolve(1, nil)
}

// Close stops accepting work and waits for submitted conversions to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.pending.Wait()
	r.pool.Wait()
}

var (
	defaultRunnerOnce sync.Once
	defaultRunner     *Runner
)

// ConvertAsync converts args.InputPath to args.OutputPath on a shared
// runner with default options.
func ConvertAsync(args ConvertArgs) *Future {
	defaultRunnerOnce.Do(func() {
		defaultRunner = NewRunner(DefaultOptions())
	})
	return defaultRunner.Submit(args)
}

// ConvertAll submits every request to r and waits for all of them. The
// returned slice holds one error (or nil) per request, in request order.
func ConvertAll(ctx context.Context, r *Runner, requests []ConvertArgs) ([]error, error) {
	futures := make([]*Future, len(requests))
	for i, req := range requests {
		futures[i] = r.Submit(req)
	}
	errs := make([]error, len(requests))
	for i, fut := range futures {
		_, err := fut.Wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errs, ctxErr
		}
		errs[i] = err
	}
	return errs, nil
}
