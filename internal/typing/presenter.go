// Package typing implements the simulated-streaming reveal: the assistant's
// response is fully known before presentation starts, and a presenter doles it
// out in timed increments so clients can render a typing effect. The reveal is
// cancelable; stopping commits whatever has been revealed so far as the final
// text rather than discarding it.
package typing

import (
	"context"
	"sync"
	"time"
)

// State is the presenter's position in its turn lifecycle.
type State int

const (
	// Idle: no exchange in flight.
	Idle State = iota
	// Requesting: the orchestrator call is in flight; nothing to show yet.
	Requesting
	// Revealing: the full text is known and increments are being emitted.
	Revealing
	// Settled: the full text has been revealed and committed.
	Settled
	// Stopped: the reveal was terminated early; the partial text is final.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Revealing:
		return "revealing"
	case Settled:
		return "settled"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Granularity selects how much text each increment carries. The floating
// widget reveals rune by rune; the full chat page reveals whole responses at
// once.
type Granularity int

const (
	ByRune Granularity = iota
	ByMessage
)

// Presenter reveals one response per turn. A Presenter is single-use per
// turn: once it reaches Settled or Stopped there is no way back to Revealing
// for the same text, matching the one-way turn lifecycle. A new turn gets a
// new Presenter.
type Presenter struct {
	interval    time.Duration
	granularity Granularity

	mu       sync.Mutex
	state    State
	revealed []rune
	full     string
	stopped  chan struct{}
}

func NewPresenter(interval time.Duration, granularity Granularity) *Presenter {
	return &Presenter{
		interval:    interval,
		granularity: granularity,
		state:       Idle,
		stopped:     make(chan struct{}),
	}
}

// BeginRequest transitions Idle -> Requesting when the user submits.
func (p *Presenter) BeginRequest() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		p.state = Requesting
	}
}

// Reveal starts emitting increments of text on the presenter's interval and
// returns the channel they arrive on. The channel closes when the reveal
// settles, is stopped, or the context is canceled (which counts as a stop).
// Either way, Transcript reports the committed text afterwards.
func (p *Presenter) Reveal(ctx context.Context, text string) <-chan string {
	p.mu.Lock()
	if p.state == Stopped {
		// Stop won the race against the orchestrator resolving. The turn is
		// over; nothing gets revealed.
		p.mu.Unlock()
		ch := make(chan string)
		close(ch)
		return ch
	}
	p.state = Revealing
	p.full = text
	p.mu.Unlock()

	ch := make(chan string)
	go p.run(ctx, text, ch)
	return ch
}

func (p *Presenter) run(ctx context.Context, text string, ch chan<- string) {
	defer close(ch)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	runes := []rune(text)
	for i := 0; i < len(runes); {
		select {
		case <-ctx.Done():
			p.finish(Stopped)
			return
		case <-p.stopped:
			p.finish(Stopped)
			return
		case <-ticker.C:
		}

		// A stop may have landed while the tick was already pending; it wins.
		select {
		case <-ctx.Done():
			p.finish(Stopped)
			return
		case <-p.stopped:
			p.finish(Stopped)
			return
		default:
		}

		var chunk []rune
		switch p.granularity {
		case ByMessage:
			chunk = runes[i:]
			i = len(runes)
		default:
			chunk = runes[i : i+1]
			i++
		}

		p.mu.Lock()
		p.revealed = append(p.revealed, chunk...)
		p.mu.Unlock()

		select {
		case ch <- string(chunk):
		case <-ctx.Done():
			p.finish(Stopped)
			return
		case <-p.stopped:
			p.finish(Stopped)
			return
		}
	}
	p.finish(Settled)
}

func (p *Presenter) finish(terminal State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// A stop that raced the final increment keeps the Stopped state.
	if p.state != Stopped {
		p.state = terminal
	}
}

// Stop terminates the turn early. Reachable from Requesting or Revealing;
// whatever has been revealed so far becomes the final transcript. Safe to call
// more than once.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Requesting, Revealing:
		p.state = Stopped
		close(p.stopped)
	}
}

// State returns the current lifecycle state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Transcript returns the text revealed so far. After Settled it equals the
// full response; after Stopped it is the committed truncation.
func (p *Presenter) Transcript() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.revealed)
}
