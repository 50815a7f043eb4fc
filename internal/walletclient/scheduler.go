package walletclient

import (
	"sync"
	"time"
)

// TimerHandle is a cancellable scheduled task. Making timers explicit
// keeps teardown mechanically checkable instead of relying on manual
// cleanup of ambient timeouts.
type TimerHandle interface {
	Stop()
}

// Scheduler abstracts one-shot and repeating timers so tests can drive
// the reconnect/polling timeline without real sleeps.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) TimerHandle
	TickerFunc(d time.Duration, fn func()) TimerHandle
}

type realScheduler struct{}

// NewScheduler returns a Scheduler backed by the runtime clock.
func NewScheduler() Scheduler {
	return realScheduler{}
}

type afterHandle struct {
	t *time.Timer
}

func (h afterHandle) Stop() {
	h.t.Stop()
}

func (realScheduler) AfterFunc(d time.Duration, fn func()) TimerHandle {
	return afterHandle{t: time.AfterFunc(d, fn)}
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

func (realScheduler) TickerFunc(d time.Duration, fn func()) TimerHandle {
	h := &tickerHandle{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-h.done:
				return
			case <-h.ticker.C:
				fn()
			}
		}
	}()
	return h
}
