package feed_test

import (
	"laporantdx/backend/internal/models"
	"sync"
)

type MockClient struct {
	id          string
	RecvChannel chan models.FeedEvent
	closeOnce   sync.Once
	closed      chan struct{}
}

func newMockClient(id string, buffer int) *MockClient {
	return &MockClient{
		id:          id,
		RecvChannel: make(chan models.FeedEvent, buffer),
		closed:      make(chan struct{}),
	}
}

func (c *MockClient) GetID() string                            { return c.id }
func (c *MockClient) GetSendChannel() chan<- models.FeedEvent { return c.RecvChannel }
func (c *MockClient) Run()                                     {}

func (c *MockClient) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

func (c *MockClient) IsClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
