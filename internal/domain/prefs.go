package domain

// Flashcard count bounds applied whenever preferences are created or
// updated.
const (
	MinFlashcardsCount = 5
	MaxFlashcardsCount = 50
)

// PersonalizationPrefs are the process-wide generation settings. They
// are loaded once with the data tree, mutated only through explicit
// preference edits, and persisted on every change.
type PersonalizationPrefs struct {
	Depth           string `json:"depth"`
	Examples        string `json:"examples"`
	Rigor           string `json:"rigor"`
	ReadTimeMinutes int    `json:"read_time_minutes"`
	Difficulty      string `json:"difficulty"`
	CitationStyle   string `json:"citation_style"`
	FlashcardsCount int    `json:"flashcards_count"`
}

// DefaultPrefs returns the settings used for a fresh data tree.
func DefaultPrefs() *PersonalizationPrefs {
	return &PersonalizationPrefs{
		Depth:           "standard",
		Examples:        "some",
		Rigor:           "balanced",
		ReadTimeMinutes: 10,
		Difficulty:      "Medium",
		CitationStyle:   "inline",
		FlashcardsCount: 15,
	}
}

// Clamp forces FlashcardsCount into its allowed range.
func (p *PersonalizationPrefs) Clamp() {
	if p.FlashcardsCount < MinFlashcardsCount {
		p.FlashcardsCount = MinFlashcardsCount
	}
	if p.FlashcardsCount > MaxFlashcardsCount {
		p.FlashcardsCount = MaxFlashcardsCount
	}
}
