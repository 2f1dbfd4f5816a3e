package domain

import "errors"

// ErrUnsupported is returned when an operation is not permitted for the kinds involved,
// such as creating a Collection under a Point or dropping into an incompatible target.
var ErrUnsupported = errors.New("unsupported operation")

// ErrInvalidRow is returned when a row lies outside the valid range of its parent.
var ErrInvalidRow = errors.New("invalid row")

// ErrInvalidIndex is returned for a stale or foreign index.
var ErrInvalidIndex = errors.New("invalid index")

// ErrNilFragment is returned when a fragment is required but missing.
var ErrNilFragment = errors.New("nil fragment")

// ErrAlreadyExpanded is returned when expanding a node that already has children.
var ErrAlreadyExpanded = errors.New("node already expanded")

// ErrReentrant is returned when a mutation is started from inside a change notification.
var ErrReentrant = errors.New("reentrant mutation")

// ErrKindMismatch is returned when a fragment does not have the expected kind.
var ErrKindMismatch = errors.New("kind mismatch")

// ErrCodec is returned when bytes cannot be decoded into a fragment.
var ErrCodec = errors.New("codec failure")

// ErrMalformedDocument is returned when a document violates the structural rules.
var ErrMalformedDocument = errors.New("malformed document")

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrNoFilename is returned by Save when no file has been associated with the document.
var ErrNoFilename = errors.New("no filename")

// ErrInvalidMove is returned when moving a node into itself or one of its descendants.
var ErrInvalidMove = errors.New("invalid move")
