package veranda

import (
	"fmt"
	"iter"
)

// DefaultMaxAllowedErrors is the initial error budget of a dictionary.
const DefaultMaxAllowedErrors = 200

// ModelStateDictionary records, per request, the binding outcome of every
// touched field: raw and attempted values, recorded errors, and validation
// state, addressed by dotted/bracketed field paths. The empty key addresses
// the whole model.
//
// Key lookup is case-insensitive; keys are stored with the casing they were
// first written with. Enumeration yields entries in the order their keys
// first received one.
//
// A dictionary is owned by a single request's binding/validation cycle and
// must not be shared across concurrently processed requests.
type ModelStateDictionary struct {
	root  *node
	order []*node // nodes carrying an entry, in first-write order

	errorCount          int
	maxAllowedErrors    int
	hasReachedMaxErrors bool
}

// NewModelStateDictionary returns an empty dictionary with the default
// error budget.
func NewModelStateDictionary() *ModelStateDictionary {
	return &ModelStateDictionary{
		root:             newRootNode(),
		maxAllowedErrors: DefaultMaxAllowedErrors,
	}
}

// NewModelStateDictionaryFrom deep-copies other: entries, enumeration
// order, error count, budget, and the reached-max flag all carry over so
// budget enforcement continues correctly on the copy.
func NewModelStateDictionaryFrom(other *ModelStateDictionary) *ModelStateDictionary {
	d := NewModelStateDictionary()
	if other == nil {
		return d
	}
	d.maxAllowedErrors = other.maxAllowedErrors
	for _, n := range other.order {
		d.setEntry(n.key, n.entry.clone())
	}
	d.hasReachedMaxErrors = other.hasReachedMaxErrors
	return d
}

// lookup returns the node at key, or nil when no node exists there. The
// empty key addresses the root.
func (d *ModelStateDictionary) lookup(key string) *node {
	n := d.root
	for key != "" && n != nil {
		var seg string
		seg, key = nextSegment(key)
		n = n.child(foldSegment(seg))
	}
	return n
}

// getOrCreate returns the node at key, materializing structural ancestors
// as needed.
func (d *ModelStateDictionary) getOrCreate(key string) *node {
	n := d.root
	for key != "" {
		var seg string
		seg, key = nextSegment(key)
		n = n.ensureChild(seg)
	}
	return n
}

// attach installs entry on n and brings the dictionary counters up to date.
func (d *ModelStateDictionary) attach(n *node, entry *Entry) {
	if prev := n.entry; prev != nil {
		d.errorCount -= len(prev.Errors)
		if prev.ValidationState == Invalid {
			n.bumpInvalid(-1)
		}
	} else {
		d.order = append(d.order, n)
	}
	n.entry = entry
	d.errorCount += len(entry.Errors)
	if entry.ValidationState == Invalid {
		n.bumpInvalid(1)
	}
}

// detach removes the entry from n, reverting it to a structural node or
// pruning it entirely.
func (d *ModelStateDictionary) detach(n *node) {
	entry := n.entry
	d.errorCount -= len(entry.Errors)
	if entry.ValidationState == Invalid {
		n.bumpInvalid(-1)
	}
	n.entry = nil
	for i, m := range d.order {
		if m == n {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	n.prune()
}

func (d *ModelStateDictionary) setEntry(key string, entry *Entry) {
	d.attach(d.getOrCreate(key), entry)
}

// entryAt creates an Unvalidated entry at key on first write and returns it.
func (d *ModelStateDictionary) entryAt(key string) (*node, *Entry) {
	n := d.getOrCreate(key)
	if n.entry == nil {
		d.attach(n, &Entry{})
	}
	return n, n.entry
}

// Has reports whether an entry exists at key. Structural ancestor nodes do
// not count: after writing only "foo.bar.baz", Has("foo.bar") is false.
func (d *ModelStateDictionary) Has(key string) bool {
	n := d.lookup(key)
	return n != nil && n.entry != nil
}

// Get returns the entry at key, or false when the key carries none.
func (d *ModelStateDictionary) Get(key string) (*Entry, bool) {
	n := d.lookup(key)
	if n == nil || n.entry == nil {
		return nil, false
	}
	return n.entry, true
}

// Set creates or overwrites the entry at key. An overwrite fully replaces
// the previous record; nothing is merged. The key keeps its original
// enumeration position.
func (d *ModelStateDictionary) Set(key string, entry *Entry) {
	if entry == nil {
		panic("veranda: Set requires a non-nil entry")
	}
	d.setEntry(key, entry)
}

// Add creates the entry at key and returns ErrKeyExists when one is already
// present there. Ancestor-only nodes do not block an Add.
func (d *ModelStateDictionary) Add(key string, entry *Entry) error {
	if entry == nil {
		panic("veranda: Add requires a non-nil entry")
	}
	n := d.getOrCreate(key)
	if n.entry != nil {
		return fmt.Errorf("%w: %q", ErrKeyExists, key)
	}
	d.attach(n, entry)
	return nil
}

// Remove deletes the entry at key and reports whether a deletion happened.
// Descendant entries stay; the node itself survives while it is still a
// structural ancestor. Re-adding the key later yields a pristine entry.
func (d *ModelStateDictionary) Remove(key string) bool {
	n := d.lookup(key)
	if n == nil || n.entry == nil {
		return false
	}
	d.detach(n)
	return true
}

// Clear removes every entry and resets the error count and the
// reached-max flag. The configured budget is kept.
func (d *ModelStateDictionary) Clear() {
	d.root = newRootNode()
	d.order = nil
	d.errorCount = 0
	d.hasReachedMaxErrors = false
}

// Len is the number of keys carrying an entry.
func (d *ModelStateDictionary) Len() int { return len(d.order) }

// ErrorCount is the total number of recorded errors across all entries.
func (d *ModelStateDictionary) ErrorCount() int { return d.errorCount }

// MaxAllowedErrors returns the configured error budget.
func (d *ModelStateDictionary) MaxAllowedErrors() int { return d.maxAllowedErrors }

// SetMaxAllowedErrors configures the error budget. The budget reserves one
// slot for the too-many-errors marker, so values below 3 are rejected.
func (d *ModelStateDictionary) SetMaxAllowedErrors(n int) error {
	if n < 3 {
		return fmt.Errorf("%w: got %d", ErrMaxAllowedErrorsRange, n)
	}
	d.maxAllowedErrors = n
	return nil
}

// HasReachedMaxErrors reports whether the budget has been exhausted and the
// marker recorded. It stays set until Clear.
func (d *ModelStateDictionary) HasReachedMaxErrors() bool { return d.hasReachedMaxErrors }

// SetModelValue stores the raw and attempted values for key, creating the
// entry on first write. Existing errors and validation state are untouched.
func (d *ModelStateDictionary) SetModelValue(key string, rawValue any, attemptedValue string) {
	_, e := d.entryAt(key)
	e.RawValue = rawValue
	e.AttemptedValue = attemptedValue
}

// setEntryState transitions the entry on n, keeping invalid caches in sync.
func (d *ModelStateDictionary) setEntryState(n *node, s ValidationState) {
	prev := n.entry.ValidationState
	if prev == s {
		return
	}
	n.entry.ValidationState = s
	if prev == Invalid {
		n.bumpInvalid(-1)
	}
	if s == Invalid {
		n.bumpInvalid(1)
	}
}

// MarkFieldValid records that key validated successfully, creating the
// entry if absent. An Invalid entry may not be re-marked; that returns
// ErrInvalidStateTransition and leaves the state unchanged.
func (d *ModelStateDictionary) MarkFieldValid(key string) error {
	n, e := d.entryAt(key)
	if e.ValidationState == Invalid {
		return fmt.Errorf("%w: %q is invalid", ErrInvalidStateTransition, key)
	}
	d.setEntryState(n, Valid)
	return nil
}

// MarkFieldSkipped records that validation was skipped for key, creating
// the entry if absent. An Invalid entry may not be downgraded; that returns
// ErrInvalidStateTransition and leaves the state unchanged.
func (d *ModelStateDictionary) MarkFieldSkipped(key string) error {
	n, e := d.entryAt(key)
	if e.ValidationState == Invalid {
		return fmt.Errorf("%w: %q is invalid", ErrInvalidStateTransition, key)
	}
	d.setEntryState(n, Skipped)
	return nil
}

// AddModelError appends a user-facing error message at key, creating the
// entry if absent and marking it Invalid. Once the budget is exhausted the
// call silently does nothing; use TryAddModelError to observe that.
func (d *ModelStateDictionary) AddModelError(key, message string) {
	_ = d.TryAddModelError(key, message)
}

// TryAddModelError is AddModelError reporting whether the error was
// recorded. It returns false once the budget is exhausted, including on the
// call that records the marker itself.
func (d *ModelStateDictionary) TryAddModelError(key, message string) bool {
	return d.tryAddError(key, ModelError{Message: message})
}

// AddModelFailure appends a binding failure at key, deriving the message
// from the cause kind and the field metadata. See TryAddModelFailure.
func (d *ModelStateDictionary) AddModelFailure(key string, cause error, meta Metadata) {
	_ = d.TryAddModelFailure(key, cause, meta)
}

// TryAddModelFailure appends a binding failure at key. Value-conversion
// causes yield a metadata-templated message, interpolating the attempted
// value already recorded for key when one exists; any other cause is kept
// for diagnostics with an empty message. Returns false once the budget is
// exhausted.
func (d *ModelStateDictionary) TryAddModelFailure(key string, cause error, meta Metadata) bool {
	attempted := ""
	if e, ok := d.Get(key); ok {
		attempted = e.AttemptedValue
	}
	msg := deriveMessage(cause, meta, attempted)
	return d.tryAddError(key, ModelError{Message: msg, Err: cause})
}

// tryAddError applies the budget protocol: the last slot always goes to the
// root marker, never to a real error, and once the marker is recorded every
// further call is a no-op.
func (d *ModelStateDictionary) tryAddError(key string, me ModelError) bool {
	if d.hasReachedMaxErrors {
		return false
	}
	if d.errorCount >= d.maxAllowedErrors-1 {
		d.appendError("", ModelError{Err: ErrTooManyModelErrors})
		d.hasReachedMaxErrors = true
		return false
	}
	d.appendError(key, me)
	return true
}

func (d *ModelStateDictionary) appendError(key string, me ModelError) {
	n, e := d.entryAt(key)
	e.Errors = append(e.Errors, me)
	d.errorCount++
	d.setEntryState(n, Invalid)
}

// GetValidationState returns the state of the entry exactly at key, with no
// subtree aggregation. A key carrying no entry is Unvalidated even when
// descendants exist.
func (d *ModelStateDictionary) GetValidationState(key string) ValidationState {
	n := d.lookup(key)
	if n == nil || n.entry == nil {
		return Unvalidated
	}
	return n.entry.ValidationState
}

// GetFieldValidationState aggregates over key and its whole descendant
// subtree: Invalid when any entry there is Invalid; Unvalidated when any is
// Unvalidated or none exist at or under key; Valid otherwise.
func (d *ModelStateDictionary) GetFieldValidationState(key string) ValidationState {
	n := d.lookup(key)
	if n == nil {
		return Unvalidated
	}
	if n.invalid > 0 {
		return Invalid
	}
	sawEntry := false
	sawUnvalidated := false
	n.walk(func(m *node) bool {
		if m.entry == nil {
			return true
		}
		sawEntry = true
		if m.entry.ValidationState == Unvalidated {
			sawUnvalidated = true
			return false
		}
		return true
	})
	if !sawEntry || sawUnvalidated {
		return Unvalidated
	}
	return Valid
}

// ValidationState aggregates over every entry: Invalid when any is Invalid,
// else Unvalidated when any is Unvalidated, else Valid. An empty dictionary
// is Valid.
func (d *ModelStateDictionary) ValidationState() ValidationState {
	if d.root.invalid > 0 {
		return Invalid
	}
	for _, n := range d.order {
		if n.entry.ValidationState == Unvalidated {
			return Unvalidated
		}
	}
	return Valid
}

// IsValid reports whether the aggregate state is Valid.
func (d *ModelStateDictionary) IsValid() bool { return d.ValidationState() == Valid }

// ClearValidationState clears the error list and resets the state to
// Unvalidated for the entry at key and every entry underneath it. Prefix
// matching respects segment boundaries: clearing "product" touches
// "product.detail" and "product[0]" but never "productName". The empty key
// clears validation state for the entire dictionary while keeping every
// entry and its values.
func (d *ModelStateDictionary) ClearValidationState(key string) {
	n := d.lookup(key)
	if n == nil {
		return
	}
	wasInvalid := n.invalid
	n.walk(func(m *node) bool {
		m.invalid = 0
		if e := m.entry; e != nil {
			d.errorCount -= len(e.Errors)
			e.Errors = nil
			e.ValidationState = Unvalidated
		}
		return true
	})
	for p := n.parent; p != nil; p = p.parent {
		p.invalid -= wasInvalid
	}
}

// Merge inserts or overwrites entries from other by exact key, replacing
// wholesale; error lists are never combined. Entries are deep-copied, so
// the dictionaries stay independent afterwards. A nil other is a no-op.
// When the merged total reaches this dictionary's budget, the reached-max
// flag is raised so later adds no-op.
func (d *ModelStateDictionary) Merge(other *ModelStateDictionary) {
	if other == nil {
		return
	}
	for _, n := range other.order {
		d.setEntry(n.key, n.entry.clone())
	}
	if d.errorCount >= d.maxAllowedErrors {
		d.hasReachedMaxErrors = true
	}
}

// All yields key/entry pairs in the order keys first received an entry.
func (d *ModelStateDictionary) All() iter.Seq2[string, *Entry] {
	return func(yield func(string, *Entry) bool) {
		for _, n := range d.order {
			if !yield(n.key, n.entry) {
				return
			}
		}
	}
}

// Keys returns the stored keys in enumeration order.
func (d *ModelStateDictionary) Keys() []string {
	keys := make([]string, len(d.order))
	for i, n := range d.order {
		keys[i] = n.key
	}
	return keys
}

// FindKeysWithPrefix yields, in enumeration order, every stored key equal
// to prefix or underneath it, honoring the same segment-boundary rules as
// ClearValidationState.
func (d *ModelStateDictionary) FindKeysWithPrefix(prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		root := d.lookup(prefix)
		if root == nil {
			return
		}
		for _, n := range d.order {
			if root.leadsTo(n) && !yield(n.key) {
				return
			}
		}
	}
}

// KeyedEntry pairs a stored key with its entry for bulk copies.
type KeyedEntry struct {
	Key   string
	Entry *Entry
}

// CopyTo copies all key/entry pairs into dst starting at offset, in
// enumeration order. It returns ErrInvalidRange when offset is negative or
// dst lacks room.
func (d *ModelStateDictionary) CopyTo(dst []KeyedEntry, offset int) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	if len(dst)-offset < len(d.order) {
		return fmt.Errorf("%w: need %d slots, have %d", ErrInvalidRange, len(d.order), len(dst)-offset)
	}
	for i, n := range d.order {
		dst[offset+i] = KeyedEntry{Key: n.key, Entry: n.entry}
	}
	return nil
}
