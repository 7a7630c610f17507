package jobs

import "errors"

// ErrInvalidInput marks caller mistakes (missing fields, empty filter) so the
// HTTP layer can map them to 400 without string matching.
var ErrInvalidInput = errors.New("invalid_input")
