package contactui

import "sync"

// Notifier surfaces transient, user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

const maxPendingNotifications = 32

// Notifications queues messages until the presentation layer drains them.
// Only the most recent entries are kept.
type Notifications struct {
	mu    sync.Mutex
	items []Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

func (n *Notifications) Success(msg string) {
	n.push(Notification{Level: LevelSuccess, Message: msg})
}

func (n *Notifications) Error(msg string) {
	n.push(Notification{Level: LevelError, Message: msg})
}

func (n *Notifications) push(item Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, item)
	if over := len(n.items) - maxPendingNotifications; over > 0 {
		n.items = append([]Notification(nil), n.items[over:]...)
	}
}

// Drain returns the pending notifications, oldest first, and empties the queue.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	items := n.items
	n.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}
