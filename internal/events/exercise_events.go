package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of exercise events
type EventType string

const (
	// Session lifecycle
	EventSessionStarted EventType = "exercise.session_started"
	EventSessionClosed  EventType = "exercise.session_closed"

	// Learner interaction
	EventActionApplied    EventType = "exercise.action_applied"
	EventQuestionSelected EventType = "exercise.question_selected"
)

const (
	eventSource  = "phrase-sort-service"
	eventVersion = "1.0"
)

// ExerciseEvent is the envelope for every published exercise event
type ExerciseEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	SessionID string                 `json:"session_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SessionStartedEvent struct {
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type SessionClosedEvent struct {
	Responses []string `json:"responses"`
}

type ActionAppliedEvent struct {
	Kind          string      `json:"kind"`
	QuestionIndex int         `json:"question_index"`
	Payload       interface{} `json:"payload"`
	Response      string      `json:"response"`
}

type QuestionSelectedEvent struct {
	QuestionIndex int `json:"question_index"`
}

// NewExerciseEvent wraps data in an envelope with a fresh id and timestamp.
func NewExerciseEvent(eventType EventType, sessionID string, data interface{}) *ExerciseEvent {
	return &ExerciseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		SessionID: sessionID,
		Data:      data,
	}
}
