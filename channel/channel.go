// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package channel abstracts the asynchronous message transport between the
// host and the platform side.
//
// A Messenger delivers an opaque payload to a named channel and returns a
// Reply, a one-shot future that resolves with the response buffer. Sends do
// not block on the response; callers either poll Done, block in Await, or
// attach a continuation with Then.
//
// The package imposes no timeout: a channel that never responds leaves its
// Reply pending indefinitely. Callers that need a bound pass a cancellable
// context to Await.
package channel

import (
	"context"
	"errors"
	"sync"
)

// Common errors returned by channel operations.
var (
	// ErrClosed is returned when sending on a closed messenger.
	ErrClosed = errors.New("channel: messenger is closed")

	// ErrNoHandler is returned by Loopback when no handler is registered
	// for the target channel.
	ErrNoHandler = errors.New("channel: no handler for channel")

	// ErrPending is returned by Bytes when the reply has not resolved yet.
	ErrPending = errors.New("channel: reply still pending")
)

// Messenger delivers payloads to named channels.
//
// Send must not block waiting for the response: it returns immediately with
// a Reply that resolves later. The context bounds delivery of the request,
// not arrival of the response.
type Messenger interface {
	Send(ctx context.Context, channel string, payload []byte) (*Reply, error)
}

// Reply is a one-shot future for a response buffer.
//
// A Reply resolves exactly once, with either data or an error; later
// resolutions are ignored. All methods are safe for concurrent use.
type Reply struct {
	done chan struct{}
	once sync.Once
	data []byte
	err  error
}

// NewReply creates an unresolved reply. Transport implementations resolve
// it when the response arrives.
func NewReply() *Reply {
	return &Reply{done: make(chan struct{})}
}

// Resolve completes the reply with a response buffer.
// Only the first resolution takes effect.
func (r *Reply) Resolve(data []byte) {
	r.once.Do(func() {
		r.data = data
		close(r.done)
	})
}

// Reject completes the reply with an error.
// Only the first resolution takes effect.
func (r *Reply) Reject(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done returns a channel that is closed when the reply resolves.
func (r *Reply) Done() <-chan struct{} {
	return r.done
}

// Bytes returns the response buffer if the reply has resolved.
// Before resolution it returns ErrPending.
func (r *Reply) Bytes() ([]byte, error) {
	select {
	case <-r.done:
		return r.data, r.err
	default:
		return nil, ErrPending
	}
}

// Await blocks until the reply resolves or the context is cancelled.
func (r *Reply) Await(ctx context.Context) ([]byte, error) {
	select {
	case <-r.done:
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Then runs fn on its own goroutine once the reply resolves.
// The continuation receives the resolved buffer and error exactly as Bytes
// would return them.
func (r *Reply) Then(fn func(data []byte, err error)) {
	go func() {
		<-r.done
		fn(r.data, r.err)
	}()
}
