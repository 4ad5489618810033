package suggest

import (
	"sync"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

// DefaultDelay is the pause before a requested run generates its result.
const DefaultDelay = 1500 * time.Millisecond

// Result is the outcome of one completed run.
type Result struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
	GeneratedAt time.Time           `json:"generated_at"`
	ItemCount   int                 `json:"item_count"`
}

// Runner performs at most one deferred generation at a time. A request
// snapshots the items, waits for the delay, then generates and hands the
// result to the completion callback.
type Runner struct {
	engine *Engine
	delay  time.Duration
	onDone func(Result)
	now    func() time.Time

	mu      sync.Mutex
	pending bool
	closed  bool
	timer   *time.Timer
	latest  *Result
}

// NewRunner creates a runner. onDone may be nil; it is called from the
// timer goroutine.
func NewRunner(engine *Engine, delay time.Duration, onDone func(Result)) *Runner {
	if delay < 0 {
		delay = 0
	}
	return &Runner{
		engine: engine,
		delay:  delay,
		onDone: onDone,
		now:    time.Now,
	}
}

// Request schedules a run over items. It returns false without doing
// anything when a run is already pending or the runner is closed.
func (r *Runner) Request(items []domain.ClothingItem) bool {
	snapshot := make([]domain.ClothingItem, len(items))
	for i := range items {
		snapshot[i] = items[i].Clone()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending || r.closed {
		return false
	}
	r.pending = true
	r.timer = time.AfterFunc(r.delay, func() {
		r.run(snapshot)
	})
	return true
}

func (r *Runner) run(items []domain.ClothingItem) {
	res := Result{
		Suggestions: r.engine.Generate(items),
		GeneratedAt: r.now().UTC(),
		ItemCount:   len(items),
	}

	r.mu.Lock()
	r.latest = &res
	r.pending = false
	r.timer = nil
	r.mu.Unlock()

	if r.onDone != nil {
		r.onDone(res)
	}
}

// Pending reports whether a run is scheduled and not yet complete.
func (r *Runner) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Latest returns the most recent completed result.
func (r *Runner) Latest() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest == nil {
		return Result{}, false
	}
	return *r.latest, true
}

// Close stops a pending timer and rejects further requests. A run whose
// timer already fired still completes.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.timer != nil && r.timer.Stop() {
		r.pending = false
	}
	r.timer = nil
}
