package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityInfo
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityInfo:
		return "info"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier displays a transient user-facing message.
type Notifier interface {
	Show(message string, severity Severity)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Show(string, Severity) {}

// Banner is one displayed notification.
type Banner struct {
	ID       string
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// Center stacks transient banners. Each banner is removed by its own
// dismissal timer; there is no queueing, dedup, or priority.
type Center struct {
	dismiss time.Duration

	mu      sync.Mutex
	banners []Banner
	timers  map[string]*time.Timer
}

const defaultDismiss = 3 * time.Second

func NewCenter(dismiss time.Duration) *Center {
	if dismiss <= 0 {
		dismiss = defaultDismiss
	}
	return &Center{dismiss: dismiss}
}

func (c *Center) Show(message string, severity Severity) {
	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timers == nil {
		c.timers = make(map[string]*time.Timer)
	}
	c.banners = append(c.banners, Banner{
		ID:       id,
		Message:  message,
		Severity: severity,
		ShownAt:  time.Now(),
	})
	c.timers[id] = time.AfterFunc(c.dismiss, func() {
		c.remove(id)
	})
}

// Active returns the currently displayed banners, oldest first.
func (c *Center) Active() []Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Banner, len(c.banners))
	copy(out, c.banners)
	return out
}

// Close stops every outstanding dismissal timer and clears the stack.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.banners = nil
}

func (c *Center) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, b := range c.banners {
		if b.ID == id {
			c.banners = append(c.banners[:i], c.banners[i+1:]...)
			break
		}
	}
	delete(c.timers, id)
}
