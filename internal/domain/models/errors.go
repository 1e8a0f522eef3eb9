package models

import "errors"

// Closed set of recoverable failure kinds. Callers match on these rather
// than inspecting error strings; none of them is fatal to a turn.
var (
	// ErrResolutionAmbiguous: no confident entity match; surfaced to the
	// user as a clarify reply, never as an error.
	ErrResolutionAmbiguous = errors.New("entity resolution ambiguous")

	// ErrUpstreamUnavailable: a provider or completion call failed or
	// timed out; the owning branch degrades to absent data.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedModelOutput: completion output did not parse into the
	// expected shape; deterministic fallback logic takes over.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrMemoryUnavailable: persisted session store unreachable; memory
	// degrades to the in-process fallback chain.
	ErrMemoryUnavailable = errors.New("session memory unavailable")
)

// ErrorKind maps an error to its taxonomy label for metrics and the turn
// log. Unrecognized errors report as "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrResolutionAmbiguous):
		return "resolution_ambiguous"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrMalformedModelOutput):
		return "malformed_model_output"
	case errors.Is(err, ErrMemoryUnavailable):
		return "memory_unavailable"
	default:
		return "internal"
	}
}
