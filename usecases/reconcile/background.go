package reconcile

import (
	"context"
	"log"
	"sync"
	"time"
)

// ReconciliationStatus is a snapshot of the scheduler's last cycle, served by
// the ops status endpoint
type ReconciliationStatus struct {
	LastCycleAt    time.Time         `json:"last_cycle_at"`
	CyclesRun      int               `json:"cycles_run"`
	LastTaskErrors map[string]string `json:"last_task_errors"`
}

type statusTracker struct {
	mu         sync.Mutex
	lastCycle  time.Time
	cyclesRun  int
	taskErrors map[string]string
}

func newStatusTracker() *statusTracker {
	return &statusTracker{taskErrors: make(map[string]string)}
}

func (t *statusTracker) recordCycle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastCycle = time.Now()
	t.cyclesRun++
}

func (t *statusTracker) recordTask(name string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.taskErrors[name] = err.Error()
	} else {
		delete(t.taskErrors, name)
	}
}

func (t *statusTracker) snapshot() ReconciliationStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	errors := make(map[string]string, len(t.taskErrors))
	for name, msg := range t.taskErrors {
		errors[name] = msg
	}
	return ReconciliationStatus{
		LastCycleAt:    t.lastCycle,
		CyclesRun:      t.cyclesRun,
		LastTaskErrors: errors,
	}
}

// Status returns a snapshot of the last reconciliation cycle
func (u *ReconcileUseCase) Status() ReconciliationStatus {
	return u.status.snapshot()
}

// RunReconciliationCycle fans out one reconciliation batch: presence, labels,
// release. Each task runs as an independently recovered goroutine, so a
// failure or panic in one never prevents the others from running in the same
// cycle. Returns when all tasks of the cycle have finished.
func (u *ReconcileUseCase) RunReconciliationCycle(ctx context.Context) {
	log.Printf("🔄 Starting reconciliation cycle for %s", u.trackerRepo)
	u.status.recordCycle()

	tasks := []struct {
		name string
		run  func(context.Context) error
	}{
		{"RefreshPresence", u.RefreshPresence},
		{"SyncLabels", u.SyncLabels},
		{"AnnounceLatestRelease", u.AnnounceLatestRelease},
	}

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u.alerts.WrapBackgroundTask(task.name, func() error {
				err := task.run(ctx)
				u.status.recordTask(task.name, err)
				return err
			})()
		}()
	}
	wg.Wait()

	log.Printf("🔄 Reconciliation cycle finished for %s", u.trackerRepo)
}

// StartReconciliationLoop runs one cycle immediately and then one per
// interval until the context is cancelled.
//
// There is deliberately no single-flight guard: if a cycle outlives the
// interval the next one overlaps it. Both shared artifacts (label cache,
// remote command options) are idempotently overwritten, so overlap is safe
// but unserialized.
func (u *ReconcileUseCase) StartReconciliationLoop(ctx context.Context, interval time.Duration) {
	log.Printf("⏰ Reconciliation loop started with %s interval", interval)

	u.RunReconciliationCycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("⏰ Reconciliation loop stopped")
			return
		case <-ticker.C:
			go u.RunReconciliationCycle(ctx)
		}
	}
}
