// Package events carries wealth recompute requests, either in-process or
// through Kafka to the worker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"investwise/internal/services"
	"investwise/internal/uuid"
)

// TopicWealthRecompute carries RecomputePayload events from the API to the worker.
const TopicWealthRecompute = "wealth.recompute"

// EventTypeRecomputeRequested is the only event type on TopicWealthRecompute.
const EventTypeRecomputeRequested = "wealth.recompute_requested.v1"

// Event is the envelope of every message on the bus.
type Event struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Source     string          `json:"source"`
	Payload    json.RawMessage `json:"payload"`
}

// RecomputePayload asks for a fresh valuation of one user.
type RecomputePayload struct {
	UserID  string `json:"user_id"`
	Trigger string `json:"trigger"`
}

// NewRecomputeEvent wraps a payload in an envelope with a fresh ID.
func NewRecomputeEvent(source string, p RecomputePayload) (*Event, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal recompute payload: %w", err)
	}
	return &Event{
		EventID:    uuid.New(),
		EventType:  EventTypeRecomputeRequested,
		OccurredAt: time.Now().UTC(),
		Source:     source,
		Payload:    data,
	}, nil
}

// DecodeRecompute parses a message value into its envelope and payload.
func DecodeRecompute(value []byte) (*Event, RecomputePayload, error) {
	var ev Event
	if err := json.Unmarshal(value, &ev); err != nil {
		return nil, RecomputePayload{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.EventType != EventTypeRecomputeRequested {
		return &ev, RecomputePayload{}, fmt.Errorf("unexpected event type %q", ev.EventType)
	}
	var p RecomputePayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		return &ev, RecomputePayload{}, fmt.Errorf("decode recompute payload: %w", err)
	}
	if p.UserID == "" {
		return &ev, RecomputePayload{}, fmt.Errorf("recompute event %s has no user_id", ev.EventID)
	}
	return &ev, p, nil
}

// Valuator is the valuation entry point recompute requests end up in.
type Valuator interface {
	ComputeAndSnapshot(ctx context.Context, userID, trigger string) (*services.Valuation, error)
}
