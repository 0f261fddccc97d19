package research

import (
	"context"
)

// Recency restricts a research query to results from a recent window.
type Recency string

const (
	RecencyNone  Recency = ""
	RecencyHour  Recency = "hour"
	RecencyDay   Recency = "day"
	RecencyWeek  Recency = "week"
	RecencyMonth Recency = "month"
	RecencyYear  Recency = "year"
)

// Answer is the provider's response to one query: synthesized prose plus the
// web sources it consulted.
type Answer struct {
	Text    string
	Sources []string
}

// Provider is a minimal interface for retrieval-augmented answer services.
type Provider interface {
	Search(ctx context.Context, query string, recency Recency) (Answer, error)
	Name() string
}
