package enrichment

import "strings"

// NormalizeKeywords lowercases keywords and removes duplicates while
// preserving first-seen order. Blank entries are dropped.
func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		normalized = append(normalized, keyword)
	}

	return normalized
}

// MetadataFromPayload normalizes a decoded model response into Metadata.
// Missing or malformed fields default to empty or neutral values rather
// than failing the call.
func MetadataFromPayload(payload map[string]any) *Metadata {
	metadata := EmptyMetadata()
	if payload == nil {
		return metadata
	}

	metadata.ExplicitKeywords = NormalizeKeywords(stringSlice(payload["explicit_keywords"]))
	metadata.ImplicitKeywords = NormalizeKeywords(stringSlice(payload["implicit_keywords"]))

	if category, ok := payload["category"].(string); ok {
		metadata.Category = NormalizeCategory(category)
	}
	if sentiment, ok := payload["sentiment"].(string); ok {
		metadata.Sentiment = NormalizeSentiment(sentiment)
	}

	if entities, ok := payload["entities"].(map[string]any); ok {
		for kind, names := range entities {
			metadata.Entities[kind] = stringSlice(names)
		}
	}

	return metadata
}

// stringSlice coerces a decoded JSON value into a string slice,
// skipping non-string elements.
func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
