package bot

import (
	"context"
	"sync"
)

// Sender delivers replies to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatId int, text string) error
}

// chatLocks serializes events per chat so one session snapshot is never
// restored while another event for the same chat is still writing it.
type chatLocks struct {
	mu    sync.Mutex
	locks map[string]*chatLock
}

type chatLock struct {
	sync.Mutex
	refs int
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[string]*chatLock)}
}

func (c *chatLocks) lock(chatID string) (unlock func()) {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if !ok {
		l = &chatLock{}
		c.locks[chatID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, chatID)
		}
		c.mu.Unlock()
	}
}
