// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package channel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/platformview"
)

// Handler processes one request payload for a channel and returns the
// response buffer.
type Handler func(payload []byte) ([]byte, error)

// Loopback is an in-process Messenger that hands payloads to registered
// handlers on a single dispatch goroutine.
//
// Replies resolve in send order, which models the single-threaded event
// loop of a real platform host: a continuation attached to an earlier send
// always observes its effect before a later send's continuation runs.
//
// Loopback is intended for tests and examples; production embedders supply
// their own Messenger over the real platform transport.
type Loopback struct {
	mu       sync.Mutex
	handlers map[string]Handler
	queue    chan loopbackRequest
	stop     chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

type loopbackRequest struct {
	channel string
	payload []byte
	reply   *Reply
}

// NewLoopback creates a loopback messenger with its dispatch goroutine
// running.
func NewLoopback() *Loopback {
	l := &Loopback{
		handlers: make(map[string]Handler),
		queue:    make(chan loopbackRequest, 16),
		stop:     make(chan struct{}),
	}
	l.wg.Add(1)
	go l.dispatch()
	return l
}

// Register installs the handler for a channel name, replacing any previous
// handler.
func (l *Loopback) Register(channel string, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[channel] = h
}

// Send enqueues the payload for dispatch and returns its pending reply.
// The payload is handed to the handler as-is, without copying.
func (l *Loopback) Send(ctx context.Context, channel string, payload []byte) (*Reply, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	l.mu.Unlock()

	reply := NewReply()
	select {
	case l.queue <- loopbackRequest{channel: channel, payload: payload, reply: reply}:
		return reply, nil
	case <-l.stop:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the dispatch goroutine and rejects requests still queued.
func (l *Loopback) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.stop)
	l.mu.Unlock()

	l.wg.Wait()
	for {
		select {
		case req := <-l.queue:
			req.reply.Reject(ErrClosed)
		default:
			return
		}
	}
}

// dispatch resolves queued requests one at a time, in send order.
func (l *Loopback) dispatch() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stop:
			return
		case req := <-l.queue:
			l.mu.Lock()
			h, ok := l.handlers[req.channel]
			l.mu.Unlock()

			if !ok {
				platformview.Logger().Warn("no handler registered",
					slog.String("channel", req.channel))
				req.reply.Reject(ErrNoHandler)
				continue
			}

			data, err := h(req.payload)
			if err != nil {
				req.reply.Reject(err)
			} else {
				req.reply.Resolve(data)
			}
		}
	}
}

// Ensure Loopback implements Messenger.
var _ Messenger = (*Loopback)(nil)
