package history

import (
	"context"
	"time"
)

// Kind tells calls and news apart.
type Kind string

const (
	KindCall Kind = "call"
	KindNews Kind = "news"
)

// Record is one message accepted by the API.
type Record struct {
	ID   int64
	Kind Kind

	// Text is what was sent; Original is what the user entered.
	Text     string
	Original string

	// Call fields.
	Emergency  bool
	Recipients []string
	Groups     []string

	// News fields.
	Rubric string
	Number int

	SentAt time.Time
}

// Repository stores and lists sent messages.
type Repository interface {
	// Add persists r and sets r.ID.
	Add(ctx context.Context, r *Record) error

	// List returns up to limit records, newest first. A limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
}
