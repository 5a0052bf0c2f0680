// Copyright 2025 KaliAgent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "sync"

// OutputSubscriber receives events from an OutputEventStream. Subscribers
// must not block for long; Emit fans out synchronously on the caller's
// goroutine. Handle cannot return an error, rendering failures are the
// subscriber's problem.
type OutputSubscriber interface {
	// Name returns the subscriber identifier, used for deduplication.
	Name() string

	// ShouldHandle decides if this subscriber cares about the event.
	ShouldHandle(event OutputEvent) bool

	// Handle processes one event.
	Handle(event OutputEvent)
}

// OutputEventStream fans events out to registered subscribers.
// Safe for concurrent Emit and Subscribe calls.
type OutputEventStream struct {
	mu          sync.RWMutex
	subscribers []OutputSubscriber
}

// NewOutputEventStream creates an empty stream.
func NewOutputEventStream() *OutputEventStream {
	return &OutputEventStream{}
}

// Subscribe registers a subscriber. A subscriber with a name already
// registered replaces the previous one, so re-wiring a formatter is safe.
func (s *OutputEventStream) Subscribe(sub OutputSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.subscribers {
		if existing.Name() == sub.Name() {
			s.subscribers[i] = sub
			return
		}
	}
	s.subscribers = append(s.subscribers, sub)
}

// Emit delivers the event to every subscriber whose ShouldHandle accepts it.
func (s *OutputEventStream) Emit(event OutputEvent) {
	s.mu.RLock()
	subs := make([]OutputSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, sub := range subs {
		if sub.ShouldHandle(event) {
			sub.Handle(event)
		}
	}
}

// SubscriberCount reports how many subscribers are registered.
func (s *OutputEventStream) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
