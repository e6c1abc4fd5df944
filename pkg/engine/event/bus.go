package event

import (
	"sync"

	"github.com/zyedidia/generic/queue"
)

// Channel is a frame-scoped event list. Every reader sees every event sent
// during the frame exactly once, in send order; Clear ends the frame.
type Channel[T any] struct {
	frame []T
	gen   uint64
}

// NewChannel creates an empty channel
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Send appends an event to the current frame
func (c *Channel[T]) Send(ev T) {
	c.frame = append(c.frame, ev)
}

// Len is the number of events sent this frame
func (c *Channel[T]) Len() int {
	return len(c.frame)
}

// Pending returns a copy of the events in the current frame
func (c *Channel[T]) Pending() []T {
	out := make([]T, len(c.frame))
	copy(out, c.frame)
	return out
}

// Clear drops the frame's events and invalidates every reader's cursor
func (c *Channel[T]) Clear() {
	c.frame = c.frame[:0]
	c.gen++
}

// Reader tracks how far one consumer has read into a Channel
type Reader[T any] struct {
	cursor int
	gen    uint64
}

// Read returns the events the reader has not seen yet. Events sent while the
// caller is still handling this batch are left for the next Read.
func (r *Reader[T]) Read(c *Channel[T]) []T {
	if r.gen != c.gen {
		r.gen = c.gen
		r.cursor = 0
	}
	if r.cursor >= len(c.frame) {
		return nil
	}
	batch := make([]T, len(c.frame)-r.cursor)
	copy(batch, c.frame[r.cursor:])
	r.cursor = len(c.frame)
	return batch
}

// Bus holds both event channels for one simulation
type Bus struct {
	Game  *Channel[GameEvent]
	Planq *Channel[PlanqEvent]
}

// NewBus creates a Bus with empty channels
func NewBus() *Bus {
	return &Bus{Game: NewChannel[GameEvent](), Planq: NewChannel[PlanqEvent]()}
}

// EndFrame clears both channels
func (b *Bus) EndFrame() {
	b.Game.Clear()
	b.Planq.Clear()
}

// Inbox is the handoff from the input producer goroutine to the update loop.
// Producers only Post; the loop Drains at the start of each tick.
type Inbox struct {
	mu     sync.Mutex
	game   *queue.Queue[GameEvent]
	planq  *queue.Queue[PlanqEvent]
	notify chan struct{}
}

// NewInbox creates an empty inbox
func NewInbox() *Inbox {
	return &Inbox{
		game:   queue.New[GameEvent](),
		planq:  queue.New[PlanqEvent](),
		notify: make(chan struct{}, 1),
	}
}

// Post queues a GameEvent for the next tick
func (in *Inbox) Post(ev GameEvent) {
	in.mu.Lock()
	in.game.Enqueue(ev)
	in.mu.Unlock()
	in.wake()
}

// PostPlanq queues a PlanqEvent for the next tick
func (in *Inbox) PostPlanq(ev PlanqEvent) {
	in.mu.Lock()
	in.planq.Enqueue(ev)
	in.mu.Unlock()
	in.wake()
}

// Ready is signalled whenever something was posted
func (in *Inbox) Ready() <-chan struct{} {
	return in.notify
}

// Drain moves everything queued so far onto the bus, in arrival order
func (in *Inbox) Drain(bus *Bus) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	moved := 0
	for !in.game.Empty() {
		bus.Game.Send(in.game.Dequeue())
		moved++
	}
	for !in.planq.Empty() {
		bus.Planq.Send(in.planq.Dequeue())
		moved++
	}
	return moved
}

func (in *Inbox) wake() {
	select {
	case in.notify <- struct{}{}:
	default:
	}
}
