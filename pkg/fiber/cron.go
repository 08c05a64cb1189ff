package fiber

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser matches the teacher's pkg/scheduling/scheduler construction
// exactly (cron.go's and scheduler.go's cron.NewParser calls): seconds
// through day-of-week fields, so "*/2 * * * * *"-style second-resolution
// expressions work the same way they do there, rather than being limited
// to cron.ParseStandard's minute resolution.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// SpawnCron spawns a fresh fiber, running entry, every time cronExpr next
// matches, reusing the scheduler's own sleep-queue/deadline machinery
// (spec §4.2.2) instead of a second ticking goroutine — each run re-arms
// itself by computing schedule.Next(now) and sleeping until then.
// SpawnCron returns a CronHandle that can be used to stop future runs;
// it does not implement Handle, because "the fiber" it names is really
// an unbounded sequence of fibers, one per tick.
func (s *Scheduler) SpawnCron(cronExpr string, entry func(*This)) (*CronHandle, error) {
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return nil, err
	}

	ch := &CronHandle{stop: make(chan struct{})}

	var driver func(*This)
	driver = func(t *This) {
		entry(t)
		next := schedule.Next(time.Now())
		select {
		case <-ch.stop:
			return
		default:
		}
		disp := t.SleepUntil(next)
		if disp == Interrupted {
			return
		}
		select {
		case <-ch.stop:
			return
		default:
		}
		h := t.Spawn(driver)
		ch.setCurrent(h)
	}

	first := schedule.Next(time.Now())
	h := s.Spawn(func(t *This) {
		if disp := t.SleepUntil(first); disp == Interrupted {
			return
		}
		driver(t)
	})
	ch.setCurrent(h)
	return ch, nil
}

// CronHandle stops a SpawnCron sequence.
type CronHandle struct {
	mu       sync.Mutex
	current  *Handle // the fcb presently sleeping or running, re-pointed each tick
	stop     chan struct{}
	stopOnce sync.Once
}

// setCurrent records the Handle for the tick that is now live, so Stop
// always interrupts whichever fiber is actually parked — a stale Handle
// from an earlier tick would already be terminated and Interrupt on it
// would be a silent no-op, leaving the chain running past Stop.
func (c *CronHandle) setCurrent(h *Handle) {
	c.mu.Lock()
	c.current = h
	c.mu.Unlock()
}

// Stop prevents any future tick from spawning another run, and interrupts
// the fiber of the current tick. A run already in flight is not aborted
// and is the final one, but a blocking call it makes after Stop returns
// Interrupted.
func (c *CronHandle) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
		c.mu.Lock()
		h := c.current
		c.mu.Unlock()
		if h != nil {
			_ = h.Interrupt()
		}
	})
}
