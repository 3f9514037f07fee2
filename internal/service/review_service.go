package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/domain/srs"
)

// ReviewService runs flashcard review sessions. Session decks are held
// in memory for the session's lifetime; only the per-card SRS state is
// persisted, through the engine, after every grade.
type ReviewService struct {
	engine    *Engine
	scheduler srs.Scheduler
	params    *srs.Params
	timeFunc  func() time.Time // injectable for testing
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*reviewSession
}

// reviewSession is one in-flight review run over a flashcard slot.
type reviewSession struct {
	courseID string
	topicID  string
	deck     *srs.Deck
	cards    map[string]domain.Card
	reviewed int
}

// NewReviewService creates a ReviewService with the default SM-2
// derived scheduler.
func NewReviewService(engine *Engine, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	params := srs.NewDefaultParams()
	return &ReviewService{
		engine:    engine,
		scheduler: srs.NewSchedulerWithParams(params),
		params:    params,
		timeFunc:  time.Now,
		logger:    logger.With(slog.String("component", "review_service")),
		sessions:  make(map[string]*reviewSession),
	}
}

// SessionState is the client-facing snapshot of a review session.
type SessionState struct {
	SessionID string       `json:"session_id"`
	Remaining int          `json:"remaining"`
	Reviewed  int          `json:"reviewed"`
	Done      bool         `json:"done"`
	Card      *domain.Card `json:"card,omitempty"`
}

// StartSession opens a review session over a topic's flashcard slot.
// Due cards (never reviewed, or due on or before today) come first in
// the deck, then the rest in stored order.
func (s *ReviewService) StartSession(
	ctx context.Context,
	courseID, topicID string,
) (*SessionState, error) {
	var cards []domain.Card
	states := make(map[string]*domain.CardState)
	err := s.engine.View(func(data *domain.Data) error {
		_, slot, err := findSlot(data, courseID, topicID, domain.ContentTypeFlashcards)
		if err != nil {
			return err
		}
		payload, err := slot.Flashcards()
		if err != nil {
			return fmt.Errorf("%w: flashcards not generated for topic %s", domain.ErrNotFound, topicID)
		}
		cards = payload.Cards
		for id, st := range slot.SRS {
			states[id] = st
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: flashcard slot has no cards", domain.ErrNotFound)
	}

	now := s.timeFunc()

	session := &reviewSession{
		courseID: courseID,
		topicID:  topicID,
		deck:     srs.NewDeck(cards, states, now),
		cards:    make(map[string]domain.Card, len(cards)),
	}
	for _, card := range cards {
		session.cards[card.ID] = card
	}

	sessionID := uuid.New().String()
	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	s.logger.Info("review session started",
		"session_id", sessionID,
		"course_id", courseID,
		"topic_id", topicID,
		"deck_size", session.deck.Len())
	return s.snapshot(sessionID, session), nil
}

// Session returns the current state of an open session.
func (s *ReviewService) Session(sessionID string) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: review session %s", domain.ErrNotFound, sessionID)
	}
	return s.snapshot(sessionID, session), nil
}

// Grade applies a review grade to the current card: the scheduler
// computes the next SRS state, the engine persists it, and the deck
// advances. An Again grade additionally queues a repeat of the card a
// short distance ahead so it resurfaces within the same sitting.
func (s *ReviewService) Grade(
	ctx context.Context,
	sessionID string,
	grade srs.Grade,
) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: review session %s", domain.ErrNotFound, sessionID)
	}
	cardID, ok := session.deck.Current()
	if !ok {
		return nil, fmt.Errorf("%w: review session is finished", domain.ErrValidationFailure)
	}

	now := s.timeFunc()
	err := s.engine.Update(ctx, func(data *domain.Data) error {
		_, slot, err := findSlot(data, session.courseID, session.topicID, domain.ContentTypeFlashcards)
		if err != nil {
			return err
		}
		state := slot.CardSRS(cardID, now)
		next, err := s.scheduler.Grade(*state, grade, now)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidationFailure, err)
		}
		*state = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if grade == srs.GradeAgain {
		session.deck.ReinsertCurrent(s.params.ReinsertOffset)
	}
	session.deck.Advance()
	session.reviewed++

	return s.snapshot(sessionID, session), nil
}

// EndSession discards a session deck. SRS state already persisted per
// grade is unaffected.
func (s *ReviewService) EndSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: review session %s", domain.ErrNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// snapshot builds the client-facing state. Caller holds the lock or
// exclusively owns the session.
func (s *ReviewService) snapshot(sessionID string, session *reviewSession) *SessionState {
	state := &SessionState{
		SessionID: sessionID,
		Remaining: session.deck.Len() - session.reviewed,
		Reviewed:  session.reviewed,
	}
	if state.Remaining < 0 {
		state.Remaining = 0
	}
	cardID, ok := session.deck.Current()
	if !ok {
		state.Done = true
		return state
	}
	if card, found := session.cards[cardID]; found {
		state.Card = &card
	}
	return state
}
