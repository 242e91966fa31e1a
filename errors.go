package xmltree

import "github.com/pkg/errors"

var (
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrMismatchedTag     = errors.New("mismatched tag")
	ErrUnterminatedTag   = errors.New("unterminated tag")
	ErrEmptyDocument     = errors.New("empty document")

	// ErrSelfClosing is returned when content is given to a self-closing node.
	ErrSelfClosing = errors.New("self-closing node cannot hold content")
	// ErrHierarchy is returned when a mutation would make a node its own ancestor.
	ErrHierarchy = errors.New("node cannot contain its ancestor")
)

// ErrUndefinedNode is returned when a nil node is passed where a node is required.
var ErrUndefinedNode = errors.New("node is undefined")

// ErrMalformedTag is returned for tag bodies that cannot be read, such as
// "<>" or an attribute with an unterminated quote.
var ErrMalformedTag = errors.New("malformed tag")
