// Package service orchestrates the core engine components over the
// persisted data tree: content saves, quiz attempts, flashcard review
// sessions, preferences, and export/import. All mutations run through
// a single Engine that serializes writers and checkpoints the tree to
// the store after every mutation that must survive a reload.
package service
