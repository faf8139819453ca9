package tracker

import "fmt"

// ErrorKind classifies a TrackerError without requiring callers to match
// on string content, so each of Options' interdependent constraints can
// be reported individually.
type ErrorKind int

const (
	// KindInvalidParam marks a rejected Options value (Options.Validate).
	KindInvalidParam ErrorKind = iota
	// KindOutOfMemory marks an allocation failure while building a Tracker.
	KindOutOfMemory
	// KindNoSuchKey marks a GetScore/Remove miss.
	KindNoSuchKey
	// KindClosed marks an operation attempted on a closed Tracker.
	KindClosed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParam:
		return "invalid_param"
	case KindOutOfMemory:
		return "out_of_memory"
	case KindNoSuchKey:
		return "no_such_key"
	case KindClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// TrackerError is the error type returned by this package. Compare with
// errors.Is against the package-level sentinels (ErrNoSuchKey, etc.), or
// inspect Kind directly.
type TrackerError struct {
	Kind ErrorKind
	Msg  string
}

func (e *TrackerError) Error() string { return fmt.Sprintf("tracker: %s: %s", e.Kind, e.Msg) }

// Is supports errors.Is(err, tracker.ErrNoSuchKey) by comparing Kind
// rather than pointer identity, so a freshly constructed TrackerError of
// the same Kind still matches.
func (e *TrackerError) Is(target error) bool {
	te, ok := target.(*TrackerError)
	return ok && te.Kind == e.Kind
}

func newError(kind ErrorKind, msg string) *TrackerError { return &TrackerError{Kind: kind, Msg: msg} }

// Sentinel errors for errors.Is comparisons. Msg is not significant for
// equality (Is compares only Kind).
var (
	// ErrNoSuchKey is returned by GetScore/Remove for an absent key.
	ErrNoSuchKey = newError(KindNoSuchKey, "key not present")
	// ErrClosed is returned by operations on a closed Tracker.
	ErrClosed = newError(KindClosed, "tracker is closed")
)
