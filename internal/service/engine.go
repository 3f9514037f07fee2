package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/parser"
	"github.com/recitelabs/recite-api/internal/store"
)

// Engine owns the in-memory data tree and the store checkpointing.
// The core model is single-writer: every operation takes the engine
// lock, runs synchronously to completion, and (for mutations) saves
// before releasing. A failed save is surfaced but does not roll back
// the in-memory change, so the session can continue and retry.
type Engine struct {
	mu     sync.Mutex
	data   *domain.Data
	store  store.DataStore
	logger *slog.Logger
}

// NewEngine loads the saved tree, or starts a fresh default one when
// the store is empty. Slots whose stored content predates the
// versioned payload formats are recovered through the legacy decoders
// on the way in.
func NewEngine(ctx context.Context, dataStore store.DataStore, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "engine"))

	data, err := dataStore.Load(ctx)
	if errors.Is(err, store.ErrNoData) {
		logger.Info("no saved data, starting fresh")
		data = domain.NewData()
	} else if err != nil {
		return nil, err
	}
	if data.Prefs == nil {
		data.Prefs = domain.DefaultPrefs()
	}
	data.Prefs.Clamp()

	upgraded := upgradeLegacySlots(data, logger)
	engine := &Engine{data: data, store: dataStore, logger: logger}
	if upgraded > 0 {
		logger.Info("recovered legacy slot content", "slots", upgraded)
		if err := dataStore.Save(ctx, data); err != nil {
			logger.Error("failed to persist legacy upgrade", "error", err)
		}
	}
	return engine, nil
}

// View runs fn with read access to the tree. No save happens.
func (e *Engine) View(fn func(data *domain.Data) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.data)
}

// Update runs fn with write access and checkpoints the tree when fn
// succeeds. fn returning an error leaves nothing to save: mutations
// must only be applied after all validation has passed.
func (e *Engine) Update(ctx context.Context, fn func(data *domain.Data) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.data); err != nil {
		return err
	}
	if err := e.store.Save(ctx, e.data); err != nil {
		e.logger.Error("failed to save data tree", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// findTopic resolves a course/topic pair inside the tree.
func findTopic(data *domain.Data, courseID, topicID string) (*domain.Course, *domain.Topic, error) {
	course := data.Course(courseID)
	if course == nil {
		return nil, nil, fmt.Errorf("%w: course %s", domain.ErrNotFound, courseID)
	}
	topic := course.Topic(topicID)
	if topic == nil {
		return nil, nil, fmt.Errorf("%w: topic %s", domain.ErrNotFound, topicID)
	}
	return course, topic, nil
}

// findSlot resolves a course/topic/slot triple inside the tree.
func findSlot(
	data *domain.Data,
	courseID, topicID string,
	contentType domain.ContentType,
) (*domain.Topic, *domain.ContentSlot, error) {
	if !domain.IsValidContentType(contentType) {
		return nil, nil, fmt.Errorf("%w: content type %q", domain.ErrValidationFailure, contentType)
	}
	_, topic, err := findTopic(data, courseID, topicID)
	if err != nil {
		return nil, nil, err
	}
	slot := topic.Slot(contentType)
	if slot == nil {
		return nil, nil, fmt.Errorf("%w: slot %s", domain.ErrNotFound, contentType)
	}
	return topic, slot, nil
}

// upgradeLegacySlots re-parses filled slots whose stored content no
// longer decodes but whose raw response survives, using the legacy
// text decoders. Returns the number of slots recovered; slots that
// cannot be recovered are emptied rather than left undecodable.
func upgradeLegacySlots(data *domain.Data, logger *slog.Logger) int {
	upgraded := 0
	for _, course := range data.Courses {
		for _, topic := range course.Topics {
			for contentType, slot := range topic.Content {
				if slot == nil || slot.Status != domain.SlotStatusFilled {
					continue
				}
				if _, err := slot.Payload(); err == nil {
					continue
				}
				if slot.RawResponse == "" {
					slot.Status = domain.SlotStatusEmpty
					slot.Content = nil
					continue
				}
				payload, err := parser.ReparseStored(slot.RawResponse, contentType)
				if err != nil {
					logger.Warn("could not recover legacy slot",
						"course", course.Name,
						"topic", topic.Name,
						"content_type", contentType,
						"error", err)
					slot.Status = domain.SlotStatusEmpty
					slot.Content = nil
					continue
				}
				raw, err := domain.EncodePayload(payload)
				if err != nil {
					continue
				}
				slot.Content = raw
				upgraded++
			}
		}
	}
	return upgraded
}
