package blaze

import "errors"

// Sentinel errors for each invalid-argument condition the engine reports.
// Each is a package-level var so callers can compare with errors.Is even
// after a call site wraps it with additional context via %w.
var (
	// ErrNegativeDocID is returned when AddDocument is called with a
	// negative doc-id.
	ErrNegativeDocID = errors.New("document id must be non-negative")

	// ErrDuplicateDocID is returned when AddDocument is called with a
	// doc-id already present in the store.
	ErrDuplicateDocID = errors.New("document id already exists")

	// ErrInvalidQueryTerm is returned by the query parser when a term is
	// empty after stripping a leading '-', or carries a second leading
	// '-' (i.e. "--word").
	ErrInvalidQueryTerm = errors.New("invalid query term")

	// ErrUnknownDocument is returned by operations that require an
	// existing document (RemoveDocument, MatchDocument) when given an
	// id absent from the store. Note this is distinct from
	// WordFrequencies, which returns an empty map rather than an error
	// for an unknown id.
	ErrUnknownDocument = errors.New("document not found")
)
