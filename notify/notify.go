package notify

import "sync"

type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

type Notice struct {
	Level   Level
	Message string
}

// Center fans notices out to subscribers. Stores publish here instead
// of talking to the UI, so they stay renderer-agnostic.
type Center struct {
	mu   sync.Mutex
	subs []chan Notice
}

func NewCenter() *Center {
	return &Center{}
}

// Listen returns a channel receiving every notice published after the
// call. The channel is buffered; a subscriber that stops draining loses
// notices rather than blocking publishers.
func (c *Center) Listen() <-chan Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Notice, 16)
	c.subs = append(c.subs, ch)
	return ch
}

func (c *Center) Publish(level Level, message string) {
	c.mu.Lock()
	subs := append([]chan Notice{}, c.subs...)
	c.mu.Unlock()

	notice := Notice{Level: level, Message: message}
	for _, ch := range subs {
		select {
		case ch <- notice:
		default:
		}
	}
}

func (c *Center) Info(message string)    { c.Publish(Info, message) }
func (c *Center) Success(message string) { c.Publish(Success, message) }
func (c *Center) Warning(message string) { c.Publish(Warning, message) }
func (c *Center) Error(message string)   { c.Publish(Error, message) }
