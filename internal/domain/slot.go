package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Attempt records one finished quiz run. Attempts are append-only:
// once recorded they are never modified or removed.
type Attempt struct {
	Score            int       `json:"score"`
	Total            int       `json:"total"`
	Percentage       int       `json:"percentage"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	Date             time.Time `json:"date"`
	Answers          []*int    `json:"answers"`
}

// NewAttempt builds an attempt from a scored answer sheet. Percentage
// is the rounded score share; a zero-question quiz scores zero.
func NewAttempt(score, total, timeSpentSeconds int, date time.Time, answers []*int) Attempt {
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(score) / float64(total)))
	}
	recorded := make([]*int, len(answers))
	copy(recorded, answers)
	return Attempt{
		Score:            score,
		Total:            total,
		Percentage:       percentage,
		TimeSpentSeconds: timeSpentSeconds,
		Date:             date,
		Answers:          recorded,
	}
}

// ContentSlot holds one content type's state for a topic. Quiz slots
// additionally carry attempt history and the best score; flashcard
// slots carry per-card SRS state keyed by card ID.
type ContentSlot struct {
	Status      SlotStatus      `json:"status"`
	Completed   bool            `json:"completed"`
	Content     json.RawMessage `json:"content,omitempty"`
	RawResponse string          `json:"raw_response,omitempty"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`

	// Quiz slots only.
	Attempts  []Attempt `json:"attempts,omitempty"`
	BestScore int       `json:"best_score,omitempty"`

	// Flashcard slots only.
	SRS map[string]*CardState `json:"srs,omitempty"`
}

// NewContentSlot returns an empty slot.
func NewContentSlot() *ContentSlot {
	return &ContentSlot{Status: SlotStatusEmpty}
}

// Fill stores a parsed payload plus the raw response it came from and
// marks the slot filled. Prior attempt history and SRS state survive a
// refill so regenerating content does not erase progress.
func (s *ContentSlot) Fill(p Payload, rawResponse string, now time.Time) error {
	raw, err := EncodePayload(p)
	if err != nil {
		return err
	}
	s.Status = SlotStatusFilled
	s.Content = raw
	s.RawResponse = rawResponse
	t := now.UTC()
	s.LastUpdated = &t
	return nil
}

// Payload decodes the stored content, or returns ErrNotFound when the
// slot is empty.
func (s *ContentSlot) Payload() (Payload, error) {
	if s.Status != SlotStatusFilled || len(s.Content) == 0 {
		return nil, ErrNotFound
	}
	return DecodePayload(s.Content)
}

// Quiz decodes the slot content as a quiz payload.
func (s *ContentSlot) Quiz() (*QuizPayload, error) {
	p, err := s.Payload()
	if err != nil {
		return nil, err
	}
	quiz, ok := p.(*QuizPayload)
	if !ok {
		return nil, ErrNotFound
	}
	return quiz, nil
}

// Flashcards decodes the slot content as a flashcard payload.
func (s *ContentSlot) Flashcards() (*FlashcardPayload, error) {
	p, err := s.Payload()
	if err != nil {
		return nil, err
	}
	cards, ok := p.(*FlashcardPayload)
	if !ok {
		return nil, ErrNotFound
	}
	return cards, nil
}

// RecordAttempt appends a finished attempt, raises BestScore when the
// new percentage beats it, and flips Completed once the historical
// best reaches the mastery threshold. Completion never reverts: a
// later lower-scoring retake cannot un-master a topic.
func (s *ContentSlot) RecordAttempt(attempt Attempt, masteryThreshold int) {
	s.Attempts = append(s.Attempts, attempt)
	if attempt.Percentage > s.BestScore {
		s.BestScore = attempt.Percentage
	}
	if s.BestScore >= masteryThreshold {
		s.Completed = true
	}
}

// CardSRS returns the SRS state for a card, creating the default state
// on first encounter. The returned state is owned by this slot.
func (s *ContentSlot) CardSRS(cardID string, now time.Time) *CardState {
	if s.SRS == nil {
		s.SRS = map[string]*CardState{}
	}
	if st, ok := s.SRS[cardID]; ok {
		return st
	}
	st := NewCardState(now)
	s.SRS[cardID] = st
	return st
}
