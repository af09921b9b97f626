package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/phrase-sort-service/internal/cache"
	"github.com/SAP-F-2025/phrase-sort-service/internal/events"
	"github.com/SAP-F-2025/phrase-sort-service/internal/exercise"
	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"github.com/SAP-F-2025/phrase-sort-service/internal/validator"
	"github.com/google/uuid"
)

// SessionService hosts one exercise store per mounted widget. A session is
// created at mount with the question set and closed at unmount.
type SessionService interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error)
	Get(ctx context.Context, id string) (*SessionResponse, error)
	Current(ctx context.Context, id string) (*CurrentQuestionResponse, error)
	Dispatch(ctx context.Context, id string, action exercise.Action) (*SessionResponse, error)
	Response(ctx context.Context, id string, questionIndex *int) (*AnswerResponse, error)
	Close(ctx context.Context, id string) (*ClosedSessionResponse, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateSessionRequest struct {
	Title string      `json:"title" validate:"required,max=200"`
	QSet  models.QSet `json:"qset"`
}

type SessionResponse struct {
	ID        string               `json:"id"`
	State     models.ExerciseState `json:"state"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type CurrentQuestionResponse struct {
	SessionID     string               `json:"session_id"`
	QuestionIndex int                  `json:"question_index"`
	Item          models.QuestionItem  `json:"item"`
	Legend        []models.LegendEntry `json:"legend"`
}

type AnswerResponse struct {
	SessionID     string `json:"session_id"`
	QuestionIndex int    `json:"question_index"`
	Question      string `json:"question"`
	Response      string `json:"response"`
	SortedCount   int    `json:"sorted_count"`
	Remaining     int    `json:"remaining"`
	Complete      bool   `json:"complete"`
}

type ClosedSessionResponse struct {
	ID        string   `json:"id"`
	Responses []string `json:"responses"`
}

// ===== SERVICE =====

type SessionServiceConfig struct {
	TTL      time.Duration
	Shuffler exercise.Shuffler
}

type sessionService struct {
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
	config    SessionServiceConfig
	locks     *sessionLocks
	now       func() time.Time
}

func NewSessionService(
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config SessionServiceConfig,
) SessionService {
	if config.TTL <= 0 {
		config.TTL = 2 * time.Hour
	}
	return &sessionService{
		cache:     cacheService,
		publisher: publisher,
		logger: NewServiceLogger(logger, LogConfig{
			Service:   "phrase-sort-service",
			Component: "session",
		}),
		validator: validator,
		config:    config,
		locks:     newSessionLocks(),
		now:       time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, req *CreateSessionRequest) (resp *SessionResponse, err error) {
	start := time.Now()
	id := uuid.NewString()
	defer func() {
		s.logger.LogOperation(ctx, "create_session", id, time.Since(start), err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	store := s.newStore(id)
	defer store.Close()
	if err := store.Dispatch(ctx, exercise.Init{Title: req.Title, QSet: req.QSet}); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &models.ExerciseSession{
		ID:        id,
		State:     store.State(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewExerciseEvent(events.EventSessionStarted, id, events.SessionStartedEvent{
		Title:         session.State.Title,
		QuestionCount: len(session.State.Items),
	}))

	return toSessionResponse(session), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) Current(ctx context.Context, id string) (*CurrentQuestionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	item, ok := session.State.CurrentItem()
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrQuestionNotFound, session.State.CurrentIndex)
	}

	return &CurrentQuestionResponse{
		SessionID:     id,
		QuestionIndex: session.State.CurrentIndex,
		Item:          item,
		Legend:        session.State.Legend,
	}, nil
}

// Dispatch applies one action to the session. Dispatches on the same session
// are serialized; a rejected action leaves the stored state untouched.
func (s *sessionService) Dispatch(ctx context.Context, id string, action exercise.Action) (resp *SessionResponse, err error) {
	if action == nil {
		return nil, fmt.Errorf("%w: missing action", ErrBadRequest)
	}

	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "dispatch", id, time.Since(start), err, slog.String("kind", string(action.Kind())))
	}()

	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	store := s.newStore(id, exercise.WithState(session.State))
	defer store.Close()
	if err := store.Dispatch(ctx, action); err != nil {
		return nil, err
	}

	session.State = store.State()
	session.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if event := actionEvent(id, session.State, action); event != nil {
		s.publish(ctx, event)
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) Response(ctx context.Context, id string, questionIndex *int) (*AnswerResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	index := session.State.CurrentIndex
	if questionIndex != nil {
		index = *questionIndex
	}
	if index < 0 || index >= len(session.State.Items) {
		return nil, fmt.Errorf("%w: index %d", ErrQuestionNotFound, index)
	}

	item := session.State.Items[index]
	return &AnswerResponse{
		SessionID:     id,
		QuestionIndex: index,
		Question:      item.Question,
		Response:      exercise.ResponseString(item.Sorted),
		SortedCount:   len(item.Sorted),
		Remaining:     len(item.Phrase),
		Complete:      len(item.Phrase) == 0,
	}, nil
}

// Close discards the session. The final answers are returned and published
// but not kept.
func (s *sessionService) Close(ctx context.Context, id string) (resp *ClosedSessionResponse, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "close_session", id, time.Since(start), err)
	}()

	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, sessionKey(id)); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	responses := make([]string, len(session.State.Items))
	for i, item := range session.State.Items {
		responses[i] = exercise.ResponseString(item.Sorted)
	}

	s.publish(ctx, events.NewExerciseEvent(events.EventSessionClosed, id, events.SessionClosedEvent{
		Responses: responses,
	}))

	return &ClosedSessionResponse{ID: id, Responses: responses}, nil
}

// ===== HELPERS =====

func (s *sessionService) newStore(id string, opts ...exercise.StoreOption) *exercise.Store {
	opts = append(opts,
		exercise.WithShuffler(s.config.Shuffler),
		exercise.WithLogger(s.logger.Logger().With("session_id", id)),
	)
	return exercise.NewStore(opts...)
}

func (s *sessionService) load(ctx context.Context, id string) (*models.ExerciseSession, error) {
	var session models.ExerciseSession
	if err := s.cache.Get(ctx, sessionKey(id), &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

func (s *sessionService) save(ctx context.Context, session *models.ExerciseSession) error {
	if err := s.cache.Set(ctx, sessionKey(session.ID), session, s.config.TTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// publish is best effort; failures are only logged.
func (s *sessionService) publish(ctx context.Context, event *events.ExerciseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExerciseEvent(ctx, event); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to publish exercise event",
			"event_type", event.Type,
			"session_id", event.SessionID,
			"error", err)
	}
}

// actionEvent describes answer-changing actions. Drag and layout actions
// return nil.
func actionEvent(id string, state models.ExerciseState, action exercise.Action) *events.ExerciseEvent {
	switch a := action.(type) {
	case exercise.SelectQuestion:
		return events.NewExerciseEvent(events.EventQuestionSelected, id, events.QuestionSelectedEvent{
			QuestionIndex: a.Index,
		})
	case exercise.Init:
		return events.NewExerciseEvent(events.EventSessionStarted, id, events.SessionStartedEvent{
			Title:         state.Title,
			QuestionCount: len(state.Items),
		})
	case exercise.TokenSort, exercise.TokenRearrange, exercise.TokenUnsort:
		qa := a.(exercise.QuestionAction)
		response := ""
		if q := qa.Question(); q >= 0 && q < len(state.Items) {
			response = exercise.ResponseString(state.Items[q].Sorted)
		}
		return events.NewExerciseEvent(events.EventActionApplied, id, events.ActionAppliedEvent{
			Kind:          string(a.Kind()),
			QuestionIndex: qa.Question(),
			Payload:       a,
			Response:      response,
		})
	default:
		return nil
	}
}

func toSessionResponse(session *models.ExerciseSession) *SessionResponse {
	return &SessionResponse{
		ID:        session.ID,
		State:     session.State,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func sessionKey(id string) string {
	return "exercise:session:" + id
}

// sessionLocks hands out one mutex per session id and forgets it once no
// caller holds or waits for it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.Lock()
	return func() {
		sl.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
