package advisor

import "errors"

// ErrQuotaExceeded indicates the LLM provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("advisor quota exceeded")

// ErrNotConfigured indicates no LLM credentials are configured; callers fall
// back to the deterministic classifier.
var ErrNotConfigured = errors.New("advisor not configured")
