package exercise

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DefaultState(t *testing.T) {
	store := NewStore()
	state := store.State()

	assert.Equal(t, models.DefaultExerciseTitle, state.Title)
	assert.True(t, state.RequireInit)
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.CurrentIndex)
}

func TestStore_Dispatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore(WithShuffler(noShuffle))

	require.NoError(t, store.Dispatch(ctx, Init{Title: "Lesson", QSet: testQSet(qsetItem("q", "a", "x", "y", "z"))}))
	state := store.State()
	assert.False(t, state.RequireInit)
	assert.Len(t, state.Items[0].Phrase, 3)

	require.NoError(t, store.Dispatch(ctx, TokenSort{PhraseIndex: 1, TargetIndex: 0, Value: "y", Legend: "Ly"}))
	after := store.State()
	assert.Len(t, after.Items[0].Phrase, 2)
	assert.Equal(t, "y", after.Items[0].Sorted[0].Value)

	assert.Len(t, state.Items[0].Phrase, 3, "earlier snapshot is never modified")
}

func TestStore_DispatchErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	store := NewStore(WithShuffler(noShuffle))
	require.NoError(t, store.Dispatch(ctx, Init{Title: "Lesson", QSet: testQSet(qsetItem("q", "a", "x"))}))
	before := store.State()

	err := store.Dispatch(ctx, bogusAction{})
	assert.ErrorIs(t, err, ErrUnrecognizedAction)
	assert.Equal(t, before, store.State())

	err = store.Dispatch(ctx, TokenSort{PhraseIndex: 3})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, before, store.State())
}

func TestStore_WithState(t *testing.T) {
	snapshot := withSorted("A", "B")
	store := NewStore(WithState(snapshot))

	require.NoError(t, store.Dispatch(context.Background(), TokenRearrange{OriginIndex: 0, TargetIndex: 2, Value: "A"}))
	assert.Equal(t, []string{"B", "A"}, sortedValues(store.State().Items[0].Sorted))
	assert.Equal(t, []string{"A", "B"}, sortedValues(snapshot.Items[0].Sorted))
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := NewStore(WithShuffler(noShuffle))

	var got []models.ExerciseState
	cancel := store.Subscribe(func(s models.ExerciseState) {
		got = append(got, s)
	})

	require.NoError(t, store.Dispatch(ctx, Init{Title: "Lesson", QSet: testQSet(qsetItem("q", "a", "x"))}))
	require.NoError(t, store.Dispatch(ctx, SelectQuestion{Index: 0}))
	require.Len(t, got, 2)
	assert.Equal(t, "Lesson", got[0].Title)

	_ = store.Dispatch(ctx, bogusAction{})
	assert.Len(t, got, 2, "failed dispatch does not notify")

	cancel()
	require.NoError(t, store.Dispatch(ctx, SelectQuestion{Index: 0}))
	assert.Len(t, got, 2)
}

func TestStore_Close(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	calls := 0
	store.Subscribe(func(models.ExerciseState) { calls++ })

	store.Close()

	err := store.Dispatch(ctx, SelectQuestion{Index: 1})
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, store.State().CurrentIndex)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore()
	assert.ErrorIs(t, store.Dispatch(ctx, SelectQuestion{Index: 1}), context.Canceled)
	assert.Equal(t, 0, store.State().CurrentIndex)
}

func TestStore_LogsDispatch(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := NewStore(WithLogger(logger), WithShuffler(noShuffle))

	require.NoError(t, store.Dispatch(context.Background(), Init{Title: "Lesson", QSet: testQSet(qsetItem("q", "a", "x"))}))
	require.NoError(t, store.Dispatch(context.Background(), TokenDragging{TokenIndex: 0, Status: models.TokenUnsorted}))

	out := buf.String()
	assert.Contains(t, out, "kind=init")
	assert.Contains(t, out, "kind=token_dragging")
	assert.Contains(t, out, "question_index=0")
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Dispatch(ctx, SelectQuestion{Index: i})
			_ = store.State()
		}(i)
	}
	wg.Wait()

	idx := store.State().CurrentIndex
	assert.True(t, idx >= 0 && idx < 50)
}
