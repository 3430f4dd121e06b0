package ws

import (
	"sync"
	"testing"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/stretchr/testify/assert"
)

func newTestClient(buffer int) *Client {
	return &Client{
		ID:   "test-client",
		send: make(chan []byte, buffer),
		log:  logger.NewLogger("test"),
	}
}

func TestSendJSONAfterCloseDoesNotPanic(t *testing.T) {
	c := newTestClient(1)
	c.closeSend()

	assert.NotPanics(t, func() {
		_ = c.SendJSON(map[string]string{"type": "trucksData"})
	})
}

func TestCloseSendIsIdempotent(t *testing.T) {
	c := newTestClient(1)

	assert.NotPanics(t, func() {
		c.closeSend()
		c.closeSend()
	})
}

func TestTrySendReportsFullAndClosed(t *testing.T) {
	c := newTestClient(1)

	assert.True(t, c.trySend([]byte("one")))
	assert.False(t, c.trySend([]byte("two")), "a full buffer is not queued")

	c2 := newTestClient(1)
	c2.closeSend()
	assert.False(t, c2.trySend([]byte("one")))
}

func TestConcurrentSendAndClose(t *testing.T) {
	// a client being dropped as a slow consumer must not panic senders
	for i := 0; i < 100; i++ {
		c := newTestClient(1)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = c.SendJSON(map[string]int{"n": j})
			}
		}()
		go func() {
			defer wg.Done()
			c.closeSend()
		}()
		wg.Wait()
	}
}
