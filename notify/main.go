// Package notify fans values out to subscribers.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const multiplexerTimeout = 200 * time.Millisecond

type subscriber[E any] struct {
	ch      chan E
	comment string
}

// MultiplexerSender is the sending half; only the owner of the values should hold it.
type MultiplexerSender[E any] struct {
	m *Multiplexer[E]
}

// Send delivers e to every subscriber without blocking the caller.
func (ms *MultiplexerSender[E]) Send(e E) {
	go ms.m.send(e)
}

// SendSync delivers e to every subscriber before returning.
func (ms *MultiplexerSender[E]) SendSync(e E) {
	ms.m.send(e)
}

func NewMultiplexerSender[E any](comment string) (*MultiplexerSender[E], *Multiplexer[E]) {
	m := &Multiplexer[E]{
		comment: comment,
	}
	return &MultiplexerSender[E]{m: m}, m
}

type Multiplexer[E any] struct {
	comment         string
	subscribersLock sync.Mutex
	subscribers     []subscriber[E]
}

func (m *Multiplexer[E]) Subscribe(comment string, c chan E) {
	m.subscribersLock.Lock()
	defer m.subscribersLock.Unlock()
	m.subscribers = append(m.subscribers, subscriber[E]{
		ch:      c,
		comment: comment,
	})
}

func (m *Multiplexer[E]) Unsubscribe(c chan E) {
	m.subscribersLock.Lock()
	defer m.subscribersLock.Unlock()
	i := slices.IndexFunc(m.subscribers, func(sub subscriber[E]) bool { return sub.ch == c })
	if i == -1 {
		panic("already unsubscribed")
	}
	m.subscribers = slices.Delete(m.subscribers, i, i+1)
}

func (m *Multiplexer[E]) send(e E) {
	m.subscribersLock.Lock()
	defer m.subscribersLock.Unlock()
	for _, sub := range m.subscribers {
		select {
		case sub.ch <- e:
		case <-time.After(multiplexerTimeout):
			zap.S().Warnw("subscriber timed out",
				"multiplexer", m.comment,
				"subscriber", sub.comment)
		}
	}
}
