package apiclient

import "sync"

// Lazy holds the one shared Client of a running app. The composition root
// owns it and hands Get() to whoever needs the client; the first call
// builds it.
type Lazy struct {
	once   sync.Once
	build  func() *Client
	client *Client
}

func NewLazy(build func() *Client) *Lazy {
	return &Lazy{build: build}
}

// Get returns the shared client, constructing it on first use.
func (l *Lazy) Get() *Client {
	l.once.Do(func() {
		l.client = l.build()
	})
	return l.client
}
