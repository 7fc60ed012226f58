package enrichment

import (
	"strings"
	"time"

	"feedlens/aurora/pkg/providers"
)

// Topic categories a post can be classified into. Values outside this set
// coerce to CategoryOther.
const (
	CategoryPolitics      = "politics"
	CategoryEconomics     = "economics"
	CategoryTechnology    = "technology"
	CategoryScience       = "science"
	CategorySports        = "sports"
	CategoryCulture       = "culture"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategorySociety       = "society"
	CategoryOther         = "other"
)

// Sentiment values. Values outside this set coerce to SentimentNeutral.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Entity map keys that are always present in normalized Metadata.
const (
	EntityPersons       = "persons"
	EntityOrganizations = "organizations"
	EntityLocations     = "locations"
)

var validCategories = map[string]bool{
	CategoryPolitics:      true,
	CategoryEconomics:     true,
	CategoryTechnology:    true,
	CategoryScience:       true,
	CategorySports:        true,
	CategoryCulture:       true,
	CategoryEntertainment: true,
	CategoryHealth:        true,
	CategorySociety:       true,
	CategoryOther:         true,
}

var validSentiments = map[string]bool{
	SentimentPositive: true,
	SentimentNegative: true,
	SentimentNeutral:  true,
}

// NormalizeCategory lowercases and validates a category value,
// coercing anything outside the known set to CategoryOther.
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if validCategories[category] {
		return category
	}
	return CategoryOther
}

// NormalizeSentiment lowercases and validates a sentiment value,
// coercing anything outside the known set to SentimentNeutral.
func NormalizeSentiment(sentiment string) string {
	sentiment = strings.ToLower(strings.TrimSpace(sentiment))
	if validSentiments[sentiment] {
		return sentiment
	}
	return SentimentNeutral
}

// Metadata is the normalized enrichment output for one post.
type Metadata struct {
	// ExplicitKeywords are keywords stated verbatim in the text
	// (lowercase, deduplicated, first-seen order).
	ExplicitKeywords []string

	// ImplicitKeywords are inferred topic keywords (same normalization).
	ImplicitKeywords []string

	// Category is one of the Category constants.
	Category string

	// Sentiment is one of the Sentiment constants.
	Sentiment string

	// Entities maps entity kinds to names. The persons, organizations,
	// and locations keys are always present; additional keys returned
	// by the model are kept as-is.
	Entities map[string][]string
}

// EmptyMetadata returns the neutral metadata used for posts with no
// enrichable text.
func EmptyMetadata() *Metadata {
	return &Metadata{
		ExplicitKeywords: []string{},
		ImplicitKeywords: []string{},
		Category:         CategoryOther,
		Sentiment:        SentimentNeutral,
		Entities: map[string][]string{
			EntityPersons:       {},
			EntityOrganizations: {},
			EntityLocations:     {},
		},
	}
}

// Failure describes why an enrichment attempt failed.
type Failure struct {
	// Kind classifies the failure for retry decisions.
	Kind providers.ErrorKind

	// Message is the human-readable failure reason.
	Message string
}

// Retryable reports whether the failure kind is worth retrying.
func (f *Failure) Retryable() bool {
	return f.Kind.Retryable()
}

// Result is the outcome of one enrichment attempt. A result is either
// successful (Metadata non-nil) or failed (Failure non-nil), never both;
// the constructors are the only way to build one.
type Result struct {
	// PostID identifies the post this result belongs to.
	PostID string

	// Model is the model name reported by the provider. Empty for the
	// empty-text short-circuit, which makes no provider call.
	Model string

	// InputTokens is the prompt token count billed.
	InputTokens int

	// OutputTokens is the completion token count billed.
	OutputTokens int

	// ProcessingTime is the provider round-trip time.
	ProcessingTime time.Duration

	metadata *Metadata
	failure  *Failure
}

// SuccessResult builds a successful result.
func SuccessResult(postID string, metadata *Metadata, model string, inputTokens, outputTokens int, processingTime time.Duration) *Result {
	if metadata == nil {
		metadata = EmptyMetadata()
	}
	return &Result{
		PostID:         postID,
		Model:          model,
		InputTokens:    inputTokens,
		OutputTokens:   outputTokens,
		ProcessingTime: processingTime,
		metadata:       metadata,
	}
}

// FailureResult builds a failed result from a provider error.
// The failure kind is derived via providers.KindOf.
func FailureResult(postID string, err error) *Result {
	return &Result{
		PostID: postID,
		failure: &Failure{
			Kind:    providers.KindOf(err),
			Message: err.Error(),
		},
	}
}

// Succeeded reports whether the attempt produced metadata.
func (r *Result) Succeeded() bool {
	return r.failure == nil
}

// Metadata returns the normalized metadata, or nil for failed results.
func (r *Result) Metadata() *Metadata {
	return r.metadata
}

// Failure returns the failure details, or nil for successful results.
func (r *Result) Failure() *Failure {
	return r.failure
}

// TotalTokens returns the summed token count for the attempt.
func (r *Result) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}
