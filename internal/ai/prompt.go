package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = `You are an English vocabulary tutor for Vietnamese learners.
For the given word, respond with a single JSON object and nothing else, using
this shape:
{
  "word": "...",
  "ipa": {"uk": "...", "us": "..."},
  "meaning": {"partOfSpeech": "...", "vietnamese": "..."},
  "usage": {"examples": ["..."], "collocations": ["..."], "grammarPatterns": ["..."], "commonMistakes": "..."},
  "culturalContext": {"etymology": "...", "culturalSignificance": "...", "relatedExpressions": ["..."], "nuancesForVietnameseLearners": "..."}
}`

func userPrompt(word string) string {
	return fmt.Sprintf("Generate the vocabulary entry for the word: %q", word)
}

// parseEntry decodes the model output, tolerating markdown code fences some
// models wrap around JSON even in JSON mode.
func parseEntry(raw string) (*Entry, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var entry Entry
	if err := json.Unmarshal([]byte(text), &entry); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	if entry.Word == "" {
		return nil, fmt.Errorf("model output missing word")
	}
	return &entry, nil
}
