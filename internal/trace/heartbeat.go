package trace

import (
	"context"
	"sync"
	"time"
)

// Watch emits a heartbeat for what every interval until the returned stop
// function is called. Heartbeats are parented to the span carried by ctx, so a
// trace that ends in heartbeats names the step that hung.
func Watch(ctx context.Context, interval time.Duration, what string) (stop func()) {
	if interval <= 0 || !Enabled(ctx, ScopePhase) {
		return func() {}
	}
	t := FromContext(ctx)
	parent := spanID(ctx)
	started := time.Now()
	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				t.Emit(&Event{
					Time:     now,
					Seq:      seq.Add(1),
					Kind:     KindHeartbeat,
					Scope:    ScopePhase,
					ParentID: parent,
					Name:     what,
					Detail:   "running for " + now.Sub(started).Round(time.Millisecond).String(),
				})
			case <-quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			wg.Wait()
		})
	}
}
