package types

import "sync"

// StringInterner deduplicates repeated strings so that the same surface
// token always backs onto the same underlying string, cutting allocation
// churn in high-volume term construction.
type StringInterner struct {
	mu      sync.RWMutex
	strings map[string]string // canonical string -> itself
}

var (
	// atomInterner dedupes atom/operator names ("bird", "^pick").
	atomInterner = NewStringInterner()
	// varInterner dedupes variable names ("x", "1", ...).
	varInterner = NewStringInterner()
)

// NewStringInterner creates a new string interner.
func NewStringInterner() *StringInterner {
	return &StringInterner{
		strings: make(map[string]string, 256),
	}
}

// Intern returns the canonical instance of the string. If the string hasn't
// been seen before, it's added to the intern pool.
func (si *StringInterner) Intern(s string) string {
	if s == "" {
		return ""
	}

	si.mu.RLock()
	if canonical, exists := si.strings[s]; exists {
		si.mu.RUnlock()
		return canonical
	}
	si.mu.RUnlock()

	si.mu.Lock()
	defer si.mu.Unlock()

	if canonical, exists := si.strings[s]; exists {
		return canonical
	}
	si.strings[s] = s
	return s
}

// Size returns the number of interned strings.
func (si *StringInterner) Size() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.strings)
}

// Clear removes all interned strings (useful for testing).
func (si *StringInterner) Clear() {
	si.mu.Lock()
	defer si.mu.Unlock()
	si.strings = make(map[string]string, 256)
}

// internAtomName returns a deduplicated copy of name, shared across every
// Atom constructed with the same surface text.
func internAtomName(name string) string {
	return atomInterner.Intern(name)
}

// internVarName returns a deduplicated copy of name, shared across every
// Var constructed with the same surface text.
func internVarName(name string) string {
	return varInterner.Intern(name)
}
