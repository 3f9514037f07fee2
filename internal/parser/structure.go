package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Structure response markers. A structure outline is a sequence of
// lines of the form:
//
//	TOPIC_START: <name> ## DIFFICULTY: <d> ## CATEGORY: <c>
//	SUBTOPIC: <name> ## CONCEPTS: <a, b, c>
//
// No explicit end marker exists; a topic stays open until the next
// TOPIC_START or end of input.
const (
	markerTopicStart = "TOPIC_START:"
	markerSubtopic   = "SUBTOPIC:"
)

var headingLine = regexp.MustCompile(`^#{2,3}\s+(.+)$`)

// markerToken is one tokenized structure line: the marker keyword, the
// name text before the first "##" delimiter, and any "## KEY: value"
// annotations that followed it.
type markerToken struct {
	keyword string
	name    string
	attrs   map[string]string
}

// tokenizeMarkerLine splits a marker line into its token, or returns
// ok=false for lines carrying no marker.
func tokenizeMarkerLine(line string) (markerToken, bool) {
	var keyword string
	switch {
	case strings.Contains(line, markerTopicStart):
		keyword = markerTopicStart
	case strings.Contains(line, markerSubtopic):
		keyword = markerSubtopic
	default:
		return markerToken{}, false
	}

	rest := line[strings.Index(line, keyword)+len(keyword):]
	fields := strings.Split(rest, "##")

	token := markerToken{
		keyword: keyword,
		name:    strings.TrimSpace(fields[0]),
		attrs:   map[string]string{},
	}
	for _, field := range fields[1:] {
		key, value, found := strings.Cut(field, ":")
		if !found {
			continue
		}
		token.attrs[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return token, true
}

// ParseStructure converts a structure response into an ordered topic
// list, each topic initialized with all six empty content slots. The
// marker grammar is the primary strategy; when it produces zero topics
// the parser falls back to treating every level-2/3 markdown heading
// as a topic name. Nothing is committed on failure: the caller only
// sees a topic list on success.
func ParseStructure(text string) ([]*domain.Topic, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: structure response is blank", domain.ErrInputEmpty)
	}

	topics, err := parseMarkerOutline(text)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		topics, err = parseHeadingOutline(text)
		if err != nil {
			return nil, err
		}
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf(
			"%w: no TOPIC_START markers or markdown headings found", domain.ErrParseFailure)
	}
	return topics, nil
}

// parseMarkerOutline runs the tokenizer over every line, feeding a
// builder that opens a topic on TOPIC_START and appends subtopics
// while one is open. SUBTOPIC lines before any topic are ignored.
func parseMarkerOutline(text string) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	var open *domain.Topic

	for _, line := range strings.Split(text, "\n") {
		token, ok := tokenizeMarkerLine(line)
		if !ok {
			continue
		}
		switch token.keyword {
		case markerTopicStart:
			if token.name == "" {
				continue
			}
			topic, err := domain.NewTopic(token.name, token.attrs["DIFFICULTY"], token.attrs["CATEGORY"])
			if err != nil {
				return nil, fmt.Errorf("%w: topic %q: %v", domain.ErrParseFailure, token.name, err)
			}
			topics = append(topics, topic)
			open = topic
		case markerSubtopic:
			if open == nil || token.name == "" {
				continue
			}
			open.Subtopics = append(open.Subtopics, &domain.Subtopic{
				ID:       domain.NewLocalID(),
				Name:     token.name,
				Concepts: splitConcepts(token.attrs["CONCEPTS"]),
			})
		}
	}
	return topics, nil
}

// parseHeadingOutline is the fallback strategy: every level-2/3
// markdown heading becomes a topic with default difficulty and
// category and no subtopics, deduplicated by exact name.
func parseHeadingOutline(text string) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	seen := map[string]bool{}

	for _, line := range strings.Split(text, "\n") {
		m := headingLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		topic, err := domain.NewTopic(name, "", "")
		if err != nil {
			return nil, fmt.Errorf("%w: heading %q: %v", domain.ErrParseFailure, name, err)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

// splitConcepts comma-splits a CONCEPTS annotation, dropping blanks.
func splitConcepts(raw string) []string {
	concepts := []string{}
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			concepts = append(concepts, c)
		}
	}
	return concepts
}
