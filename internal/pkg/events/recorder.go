package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory; used in tests and local runs
type Recorder struct {
	mu     sync.Mutex
	Events map[string][]Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{Events: make(map[string][]Event)}
}

func (r *Recorder) Publish(_ context.Context, topic string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events[topic] = append(r.Events[topic], event)
	return nil
}

// Topic returns the events recorded for topic
func (r *Recorder) Topic(topic string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.Events[topic]...)
}
