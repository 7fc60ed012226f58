package enrichment

import (
	"fmt"

	"feedlens/aurora/pkg/providers"
)

// systemPrompt instructs the model to answer with a single JSON object
// matching the Metadata shape.
const systemPrompt = `You are a news metadata analyst. Extract structured metadata from the post text provided by the user.

Respond with a single JSON object and nothing else, using this structure:
{
  "explicit_keywords": ["keyword stated verbatim in the text"],
  "implicit_keywords": ["inferred topic keyword"],
  "category": "one of: politics, economics, technology, science, sports, culture, entertainment, health, society, other",
  "sentiment": "one of: positive, negative, neutral",
  "entities": {
    "persons": ["person name"],
    "organizations": ["organization name"],
    "locations": ["location name"]
  }
}

Rules:
- All keywords must be lowercase.
- Use empty arrays for fields with no values, never omit a field.
- Do not invent facts that are not supported by the text.`

// Truncate cuts text to at most max runes. A non-positive max leaves the
// text unchanged.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// BuildPrompt assembles the chat messages for one post.
func BuildPrompt(text string) []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: systemPrompt},
		{Role: providers.RoleUser, Content: fmt.Sprintf("Post text:\n%s", text)},
	}
}
