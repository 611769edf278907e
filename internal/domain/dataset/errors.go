package dataset

import "errors"

// Sentinel kinds for dataset loading. Both indicate a fatal startup problem;
// the engine refuses to run on a partially loaded store.
var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedTable = errors.New("malformed dataset table")
)
