// Package study builds the cross-course study queue: a single ranked
// list of content-creation tasks and due flashcard reviews.
package study

import (
	"fmt"
	"sort"

	"github.com/recitelabs/recite-api/internal/domain"
)

// MaxItems caps the queue length.
const MaxItems = 8

// Item priorities. Lower sorts first.
const (
	PriorityReview = 1
	PriorityCreate = 2
)

// Kind distinguishes the two actionable item types.
type Kind string

const (
	KindReview Kind = "review"
	KindCreate Kind = "create"
)

// Item is one actionable entry in the study queue.
type Item struct {
	Kind        Kind               `json:"kind"`
	Priority    int                `json:"priority"`
	Label       string             `json:"label"`
	CourseID    string             `json:"course_id"`
	TopicID     string             `json:"topic_id"`
	ContentType domain.ContentType `json:"content_type"`
}

// Queue is the build result. Empty distinguishes "nothing to do" from
// a queue that was never computed.
type Queue struct {
	Items []Item `json:"items"`
	Empty bool   `json:"empty"`
}

// Build scans every slot of every topic of every course. Empty slots
// become create items (priority 2); filled, not-yet-completed
// flashcard slots become review items (priority 1). Items sort by
// priority then label, a stable deterministic tie-break, and the
// result is capped at MaxItems.
func Build(data *domain.Data) Queue {
	var items []Item
	for _, course := range data.Courses {
		for _, topic := range course.Topics {
			for _, contentType := range domain.ContentTypes() {
				slot := topic.Slot(contentType)
				if slot == nil {
					continue
				}
				switch {
				case slot.Status == domain.SlotStatusEmpty:
					items = append(items, Item{
						Kind:        KindCreate,
						Priority:    PriorityCreate,
						Label:       fmt.Sprintf("Create %s for %s / %s", contentType, course.Name, topic.Name),
						CourseID:    course.ID,
						TopicID:     topic.ID,
						ContentType: contentType,
					})
				case contentType == domain.ContentTypeFlashcards && !slot.Completed:
					items = append(items, Item{
						Kind:        KindReview,
						Priority:    PriorityReview,
						Label:       fmt.Sprintf("Review flashcards for %s / %s", course.Name, topic.Name),
						CourseID:    course.ID,
						TopicID:     topic.ID,
						ContentType: contentType,
					})
				}
			}
		}
	}

	if len(items) == 0 {
		return Queue{Items: []Item{}, Empty: true}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		return items[i].Label < items[j].Label
	})
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return Queue{Items: items}
}
