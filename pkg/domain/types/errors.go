package types

import "github.com/m-mizutani/goerr/v2"

// Error tags give every failure class a stable machine-readable
// discriminator. Handlers map the tag to the error_kind field of the
// JSON error payload so that callers never need to match on message text.
var (
	// TagUnsupportedFormat marks uploads with an unrecognized file kind
	TagUnsupportedFormat = goerr.NewTag("unsupported_format")

	// TagCorruptDocument marks structurally unparseable documents
	TagCorruptDocument = goerr.NewTag("corrupt_document")

	// TagEmptyExtraction marks documents that yielded no recoverable text
	TagEmptyExtraction = goerr.NewTag("empty_extraction")

	// TagPersistenceFailure marks embedding or store call failures
	TagPersistenceFailure = goerr.NewTag("persistence_failure")

	// TagValidationFailure marks missing or malformed structured fields
	TagValidationFailure = goerr.NewTag("validation_failure")
)

// ErrorKind names for the error_kind response field, in the same order
// as the tags above.
const (
	KindUnsupportedFormat  = "UnsupportedFormat"
	KindCorruptDocument    = "CorruptDocument"
	KindEmptyExtraction    = "EmptyExtraction"
	KindPersistenceFailure = "PersistenceFailure"
	KindValidationFailure  = "ValidationFailure"
	KindInternal           = "Internal"
)

// ErrorKind resolves the stable error kind for an error. Untagged errors
// fall back to KindInternal.
func ErrorKind(err error) string {
	switch {
	case goerr.HasTag(err, TagUnsupportedFormat):
		return KindUnsupportedFormat
	case goerr.HasTag(err, TagCorruptDocument):
		return KindCorruptDocument
	case goerr.HasTag(err, TagEmptyExtraction):
		return KindEmptyExtraction
	case goerr.HasTag(err, TagPersistenceFailure):
		return KindPersistenceFailure
	case goerr.HasTag(err, TagValidationFailure):
		return KindValidationFailure
	default:
		return KindInternal
	}
}
