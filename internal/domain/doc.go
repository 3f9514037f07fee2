// Package domain contains the core business entities, value objects, and
// domain logic of the application: courses, topics, content slots, quiz
// attempts, flashcard scheduling state, and the tagged payload union. It
// is independent of any specific infrastructure or delivery mechanism.
package domain
