package errs

import "sync"

// Cross-layer error kinds. Use-case sentinels are declared with Kind so
// transport code can map whole families of failures at once.
var (
	ErrNotFound         = New("not found")
	ErrPermissionDenied = New("permission denied")
	ErrTransientStore   = New("transient store failure")
	ErrValidation       = New("validation failed")
	ErrConflict         = New("conflict")
)

type kindEntry struct {
	sentinel error
	kind     error
}

var (
	kindsMu sync.RWMutex
	kinds   []kindEntry
)

// Kind returns a new root sentinel carrying msg and records it as a member of
// the kind family. Siblings stay distinct under Is; use IsKind for the family.
func Kind(kind error, msg string) error {
	sentinel := New(msg)
	kindsMu.Lock()
	kinds = append(kinds, kindEntry{sentinel: sentinel, kind: kind})
	kindsMu.Unlock()
	return sentinel
}

// IsKind reports whether err is kind itself or matches any sentinel declared
// with Kind(kind, ...).
func IsKind(err, kind error) bool {
	if err == nil {
		return false
	}
	if Is(err, kind) {
		return true
	}
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	for _, e := range kinds {
		if e.kind == kind && Is(err, e.sentinel) {
			return true
		}
	}
	return false
}
