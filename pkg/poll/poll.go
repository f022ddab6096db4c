// Package poll runs a fixed-rate read loop against the leader arm.
package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/leaderarm/pkg/robot"
)

// Reader reads one action from the device. *robot.Leader satisfies this.
type Reader interface {
	Action(ctx context.Context) (robot.Action, error)
}

// Sample is one tick of the loop: the action read from the device, when it
// was read, and how long the read took.
type Sample struct {
	Action    robot.Action
	Timestamp time.Time
	Loop      time.Duration
	Err       error
}

// Poller polls a Reader at a fixed frame rate and publishes samples.
// Samples are best effort: if the consumer lags, older samples are dropped
// so the most recent value wins.
type Poller struct {
	reader Reader
	fps    int

	mu      sync.Mutex
	running bool

	samples chan Sample
}

// New creates a poller. fps values <= 0 fall back to 30.
func New(reader Reader, fps int) *Poller {
	if fps <= 0 {
		fps = 30
	}
	return &Poller{
		reader:  reader,
		fps:     fps,
		samples: make(chan Sample, 1),
	}
}

// Samples returns the channel that receives one sample per tick.
func (p *Poller) Samples() <-chan Sample {
	return p.samples
}

// FPS returns the configured frame rate.
func (p *Poller) FPS() int {
	return p.fps
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("already running")
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(p.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.step(ctx)
		}
	}
}

func (p *Poller) step(ctx context.Context) {
	start := time.Now()
	action, err := p.reader.Action(ctx)
	p.send(Sample{
		Action:    action,
		Timestamp: start,
		Loop:      time.Since(start),
		Err:       err,
	})
}

func (p *Poller) send(s Sample) {
	select {
	case p.samples <- s:
	default:
		// Drop old sample if channel full, replace with new
		select {
		case <-p.samples:
		default:
		}
		p.samples <- s
	}
}
