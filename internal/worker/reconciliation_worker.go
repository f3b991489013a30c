package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"pix_checkout/internal/usecase"
	"pix_checkout/internal/usecase/interfaces"
)

type sessionReconciler interface {
	Reconcile(ctx context.Context, id string) (usecase.ReconcileOutcome, error)
}

type ReconciliationConfig struct {
	Tick         time.Duration
	Initial      time.Duration
	Pending      time.Duration
	ErrorBackoff time.Duration
	CallTimeout  time.Duration
	Concurrency  int
}

func (c ReconciliationConfig) withDefaults() ReconciliationConfig {
	if c.Tick <= 0 {
		c.Tick = time.Second
	}
	if c.Initial <= 0 {
		c.Initial = 15 * time.Second
	}
	if c.Pending <= 0 {
		c.Pending = 30 * time.Second
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = 60 * time.Second
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 25 * time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	return c
}

type trackedSession struct {
	nextPoll        time.Time
	observedPending bool
	inFlight        bool
}

// ReconciliationWorker polls tracked sessions until they reach a terminal state or
// disappear from the store.
//
// Schedule per session: first poll right away, Initial after the first PENDING
// observation, Pending after that, ErrorBackoff after a failed poll.
type ReconciliationWorker struct {
	reconciler sessionReconciler
	cfg        ReconciliationConfig

	mu      sync.Mutex
	tracked map[string]*trackedSession
	now     func() time.Time
}

var _ interfaces.ISessionTracker = (*ReconciliationWorker)(nil)

func NewReconciliationWorker(reconciler sessionReconciler, cfg ReconciliationConfig) *ReconciliationWorker {
	return &ReconciliationWorker{
		reconciler: reconciler,
		cfg:        cfg.withDefaults(),
		tracked:    make(map[string]*trackedSession),
		now:        time.Now,
	}
}

// Track schedules id for polling. Tracking an already tracked id keeps its schedule.
func (w *ReconciliationWorker) Track(id string) {
	if id == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[id]; ok {
		return
	}
	w.tracked[id] = &trackedSession{nextPoll: w.now()}
	log.Printf("[session][worker] tracking session_id=%s", id)
}

func (w *ReconciliationWorker) Tracked(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.tracked[id]
	return ok
}

func (w *ReconciliationWorker) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tracked)
}

func (w *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Tick)
	defer ticker.Stop()

	log.Printf("[session][worker] reconciliation started tick=%s concurrency=%d", w.cfg.Tick, w.cfg.Concurrency)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[session][worker] reconciliation stopped tracked=%d", w.Len())
			return
		case <-ticker.C:
			w.PollDue(ctx)
		}
	}
}

// PollDue reconciles every session whose next poll time has passed, at most
// Concurrency at a time, and returns once all of them finished.
func (w *ReconciliationWorker) PollDue(ctx context.Context) int {
	now := w.now()
	w.mu.Lock()
	var due []string
	for id, t := range w.tracked {
		if !t.inFlight && !t.nextPoll.After(now) {
			t.inFlight = true
			due = append(due, id)
		}
	}
	w.mu.Unlock()

	if len(due) == 0 {
		return 0
	}

	sem := make(chan struct{}, w.cfg.Concurrency)
	var wg sync.WaitGroup
	for _, id := range due {
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()
			w.poll(ctx, id)
		}(id)
	}
	wg.Wait()
	return len(due)
}

func (w *ReconciliationWorker) poll(ctx context.Context, id string) {
	callCtx, cancel := context.WithTimeout(ctx, w.cfg.CallTimeout)
	out, err := w.reconciler.Reconcile(callCtx, id)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	t, ok := w.tracked[id]
	if !ok {
		return
	}
	t.inFlight = false

	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		delete(w.tracked, id)
		log.Printf("[session][worker] untracked evicted session_id=%s", id)
	case err != nil:
		t.nextPoll = w.now().Add(w.cfg.ErrorBackoff)
		log.Printf("[session][worker] poll failed session_id=%s retry_in=%s err=%v", id, w.cfg.ErrorBackoff, err)
	case out.Session.Demo || out.Session.Status.IsTerminal():
		delete(w.tracked, id)
		log.Printf("[session][worker] untracked session_id=%s status=%s", id, out.Session.Status)
	case t.observedPending:
		t.nextPoll = w.now().Add(w.cfg.Pending)
	default:
		t.observedPending = true
		t.nextPoll = w.now().Add(w.cfg.Initial)
	}
}
