package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/petspa/internal/constants"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

const (
	// DefaultDuration is used when Show is given a negative duration.
	DefaultDuration = constants.NotificationDuration
	DefaultMaxSize  = constants.DefaultNotificationMax
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        string
	Severity  Severity
	Title     string
	Message   string
	Duration  time.Duration // 0 = until dismissed
	CreatedAt time.Time
}

// Timer is the part of *time.Timer the queue uses.
type Timer interface {
	Stop() bool
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Queue holds active notifications in insertion order. Each entry with a
// positive duration expires on its own timer. When MaxSize is reached the
// oldest entry is evicted.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	timers   map[string]Timer
	subs     map[int]chan []Notification
	nextSub  int
	maxSize  int
	duration time.Duration
	clock    Clock
}

type Option func(*Queue)

func WithMaxSize(n int) Option {
	return func(q *Queue) {
		q.maxSize = n
	}
}

// WithDefaultDuration overrides DefaultDuration.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		q.duration = d
	}
}

func WithClock(c Clock) Option {
	return func(q *Queue) {
		q.clock = c
	}
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		timers:   make(map[string]Timer),
		subs:     make(map[int]chan []Notification),
		maxSize:  DefaultMaxSize,
		duration: DefaultDuration,
		clock:    realClock{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show appends a notification and returns its id. A negative duration means
// the queue default; zero keeps the entry until it is removed.
func (q *Queue) Show(sev Severity, title, message string, duration time.Duration) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if duration < 0 {
		duration = q.duration
	}
	n := Notification{
		ID:        uuid.NewString(),
		Severity:  sev,
		Title:     title,
		Message:   message,
		Duration:  duration,
		CreatedAt: q.clock.Now(),
	}

	if q.maxSize > 0 {
		for len(q.items) >= q.maxSize {
			q.removeLocked(q.items[0].ID)
		}
	}
	q.items = append(q.items, n)

	if duration > 0 {
		id := n.ID
		q.timers[id] = q.clock.AfterFunc(duration, func() { q.expire(id) })
	}

	q.publishLocked()
	return n.ID
}

func (q *Queue) Success(title, message string) string {
	return q.Show(Success, title, message, -1)
}

func (q *Queue) Error(title, message string) string {
	return q.Show(Error, title, message, -1)
}

func (q *Queue) Warning(title, message string) string {
	return q.Show(Warning, title, message, -1)
}

func (q *Queue) Info(title, message string) string {
	return q.Show(Info, title, message, -1)
}

// Remove deletes the notification with id. Unknown ids are ignored.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.removeLocked(id) {
		q.publishLocked()
	}
}

// Clear removes every notification and stops their timers.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	had := len(q.items) > 0
	q.items = nil
	if had {
		q.publishLocked()
	}
}

// List returns a snapshot in insertion order.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Subscribe returns a channel that receives a snapshot after every change,
// starting with the current state. Slow readers only see the latest
// snapshot. Call the returned func to unsubscribe.
func (q *Queue) Subscribe() (<-chan []Notification, func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch := make(chan []Notification, 1)
	id := q.nextSub
	q.nextSub++
	q.subs[id] = ch
	ch <- q.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			delete(q.subs, id)
			close(ch)
		})
	}
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	// The timer may have been stopped too late to prevent this call; in
	// that case the entry is already gone.
	if _, ok := q.timers[id]; !ok {
		return
	}
	if q.removeLocked(id) {
		q.publishLocked()
	}
}

func (q *Queue) removeLocked(id string) bool {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) snapshotLocked() []Notification {
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Queue) publishLocked() {
	for _, ch := range q.subs {
		snap := q.snapshotLocked()
		// Drop a stale pending snapshot so the send never blocks.
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
