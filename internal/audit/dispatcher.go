package audit

import (
	"context"
	"errors"
	"sync"

	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/metrics"
)

type Event struct {
	TeamID    uint
	UserID    *uint
	Action    ActivityType
	IPAddress string
}

type Dispatcher struct {
	store *Logger
	log   *logger.Logger
	queue chan Event
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(store *Logger, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx := d.log.WithField(context.Background(), "action", string(ev.Action))
		err := d.store.Log(ctx, ev.TeamID, ev.UserID, ev.Action, ev.IPAddress)
		switch {
		case errors.Is(err, ErrStaleEvent):
			metrics.RecordActivityDropped()
			d.log.Debug(ctx, "activity event dropped, team or user deleted")
		case err != nil:
			d.log.Error(ctx, "activity log write failed", err)
		}
	}
}

// Dispatch never blocks the request: a full queue drops the event, and so
// does a closed dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.TeamID == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.RecordActivityDropped()
		return
	}
	select {
	case d.queue <- ev:
	default:
		metrics.RecordActivityDropped()
		d.log.Warn(context.Background(), "activity queue full, dropping event")
	}
}

// Close drains pending events. Later Dispatch calls are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
