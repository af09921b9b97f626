package exercise

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
)

// Dispatcher is what widget collaborators depend on: read the current state,
// send an action.
type Dispatcher interface {
	State() models.ExerciseState
	Dispatch(ctx context.Context, action Action) error
}

var _ Dispatcher = (*Store)(nil)

// Store owns the state tree of one mounted widget. Create it at mount with
// NewStore and release it at unmount with Close.
type Store struct {
	mu        sync.Mutex
	state     models.ExerciseState
	reducer   *Reducer
	logger    *slog.Logger
	listeners map[int]func(models.ExerciseState)
	nextID    int
	closed    bool
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	state    *models.ExerciseState
	shuffler Shuffler
	logger   *slog.Logger
}

// WithState starts the store from a previously captured state instead of the
// mount default.
func WithState(state models.ExerciseState) StoreOption {
	return func(o *storeOptions) {
		o.state = &state
	}
}

func WithShuffler(shuffle Shuffler) StoreOption {
	return func(o *storeOptions) {
		o.shuffler = shuffle
	}
}

func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

func NewStore(opts ...StoreOption) *Store {
	o := storeOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	state := models.NewExerciseState()
	if o.state != nil {
		state = *o.state
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{
		state:     state,
		reducer:   NewReducer(o.shuffler),
		logger:    logger,
		listeners: make(map[int]func(models.ExerciseState)),
	}
}

func (s *Store) State() models.ExerciseState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces action against the current state. Listeners run after the
// new state is in place, outside the store lock.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}

	attrs := []any{"kind", action.Kind()}
	if qa, ok := action.(QuestionAction); ok {
		attrs = append(attrs, "question_index", qa.Question())
	}
	s.logger.DebugContext(ctx, "Dispatching exercise action", attrs...)

	next, err := s.reducer.Reduce(s.state, action)
	if err != nil {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Exercise action rejected", append(attrs, "error", err)...)
		return err
	}
	s.state = next

	listeners := make([]func(models.ExerciseState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// Subscribe registers fn to receive every state produced by Dispatch. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(models.ExerciseState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close discards listeners and rejects further dispatches.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[int]func(models.ExerciseState))
}
