package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewExerciseEvent(t *testing.T) {
	event := NewExerciseEvent(EventSessionStarted, "s-1", SessionStartedEvent{Title: "German", QuestionCount: 2})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "phrase-sort-service", event.Source)
	assert.Equal(t, "1.0", event.Version)
	assert.Equal(t, "s-1", event.SessionID)
	assert.False(t, event.Timestamp.IsZero())

	other := NewExerciseEvent(EventSessionStarted, "s-1", nil)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, "exercise-events")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "exercise-events", testLogger())
	event := NewExerciseEvent(EventActionApplied, "s-42", ActionAppliedEvent{
		Kind:          "response_token_sort",
		QuestionIndex: 0,
		Response:      "Ich",
	})
	require.NoError(t, publisher.PublishExerciseEvent(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventActionApplied), msg.Metadata.Get("event_type"))
		assert.Equal(t, "s-42", msg.Metadata.Get("session_id"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, "exercise.action_applied", decoded["type"])
		data := decoded["data"].(map[string]interface{})
		assert.Equal(t, "response_token_sort", data["kind"])
		assert.Equal(t, "Ich", data["response"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for published message")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, publisher.PublishExerciseEvent(ctx, NewExerciseEvent(EventSessionStarted, "a", nil)))
	require.NoError(t, publisher.PublishExerciseEvent(ctx, NewExerciseEvent(EventSessionClosed, "a", nil)))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventSessionClosed, published[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
