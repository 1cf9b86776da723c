package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: document does not exist in the store
// - ErrNoEffect: the store acknowledged a write but matched/changed nothing
// - ErrUnavailable: store or cache temporarily unreachable
//
// For validation errors (bad input, unexpected fields), use pkg/domerrors.
var (
	ErrNotFound    = errors.New("not found")
	ErrNoEffect    = errors.New("no effect")
	ErrUnavailable = errors.New("unavailable")
)
