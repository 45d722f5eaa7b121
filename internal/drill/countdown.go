package drill

import "time"

const (
	// AnswerTimeLimit is how long a question is shown before it times out.
	AnswerTimeLimit = 5 * time.Second

	// TimerTick is the countdown update interval.
	TimerTick = 50 * time.Millisecond

	// TotalTicks is the number of ticks from 100% to 0%.
	TotalTicks = int(AnswerTimeLimit / TimerTick)
)

// countdown is the per-question timer. Every start or cancel bumps the
// epoch; a tick is honoured only if it carries the current epoch and the
// countdown is running, so a tick scheduled for an earlier question can
// never fire into a later one.
type countdown struct {
	epoch     uint64
	remaining int
	running   bool
}

func (c *countdown) start() {
	c.epoch++
	c.remaining = TotalTicks
	c.running = true
}

func (c *countdown) cancel() {
	if c.running {
		c.epoch++
	}
	c.running = false
}

// tick consumes one step. ok is false for a stale or cancelled tick.
func (c *countdown) tick(epoch uint64) (expired, ok bool) {
	if !c.running || epoch != c.epoch {
		return false, false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return true, true
	}
	return false, true
}

// percent returns the remaining time in [0, 100].
func (c *countdown) percent() float64 {
	return float64(c.remaining) * 100 / float64(TotalTicks)
}
