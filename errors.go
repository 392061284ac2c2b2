package lollipop

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError is the sole failure signal Types raise from Load/Dump
// (§4.1). It carries one of two shapes:
//
//   - a Leaf: one or more human-readable messages at this position, or
//   - Nested: a mapping from path segment (field name or list index, as
//     a string) to another ValidationError.
//
// ValidationError is immutable once constructed; build one with Leaf,
// Leaff, or Nested, or accumulate several with an ErrorBuilder.
type ValidationError struct {
	messages []string
	children map[string]*ValidationError
}

// Leaf constructs a leaf ValidationError carrying a single message.
func Leaf(message string) *ValidationError {
	return &ValidationError{messages: []string{message}}
}

// Leafs constructs a leaf ValidationError carrying several messages at
// the same position (§4.1: "multiple messages concatenate into a
// sequence of strings at that leaf").
func Leafs(messages ...string) *ValidationError {
	return &ValidationError{messages: append([]string(nil), messages...)}
}

// Leaff constructs a leaf ValidationError from a format string.
func Leaff(format string, args ...any) *ValidationError {
	return Leaf(fmt.Sprintf(format, args...))
}

// Nested constructs a nested ValidationError from a path-segment-keyed
// mapping of child errors.
func Nested(children map[string]*ValidationError) *ValidationError {
	if len(children) == 0 {
		return nil
	}
	return &ValidationError{children: children}
}

// IsLeaf reports whether this error carries messages rather than children.
func (e *ValidationError) IsLeaf() bool {
	return e != nil && e.children == nil
}

// Messages returns the leaf messages, or nil if this is a nested error.
func (e *ValidationError) Messages() []string {
	if e == nil || e.children != nil {
		return nil
	}
	return append([]string(nil), e.messages...)
}

// Children returns the nested child errors, or nil if this is a leaf.
func (e *ValidationError) Children() map[string]*ValidationError {
	if e == nil {
		return nil
	}
	return e.children
}

// Error implements the error interface, rendering a one-line summary.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.children == nil {
		return strings.Join(e.messages, "; ")
	}
	keys := make([]string, 0, len(e.children))
	for k := range e.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.children[k].Error()))
	}
	return strings.Join(parts, ", ")
}

// merge combines another error at this node, following the builder's
// merge-not-overwrite rule (§4.1): nested errors at overlapping paths
// coexist, and repeated leaf messages at the same path concatenate.
func (e *ValidationError) merge(other *ValidationError) *ValidationError {
	if e == nil {
		return other
	}
	if other == nil {
		return e
	}
	if e.children == nil && other.children == nil {
		return Leafs(append(append([]string(nil), e.messages...), other.messages...)...)
	}
	// A leaf colliding with a nested error at the same position: fold the
	// leaf messages under a synthetic "" key rather than discarding them.
	merged := map[string]*ValidationError{}
	for k, v := range e.asChildren() {
		merged[k] = v
	}
	for k, v := range other.asChildren() {
		if existing, ok := merged[k]; ok {
			merged[k] = existing.merge(v)
		} else {
			merged[k] = v
		}
	}
	return &ValidationError{children: merged}
}

// asChildren views a leaf error as a single "" -> leaf child map so it can
// be merged structurally with a nested error.
func (e *ValidationError) asChildren() map[string]*ValidationError {
	if e.children != nil {
		return e.children
	}
	return map[string]*ValidationError{"": Leafs(e.messages...)}
}

// ErrorBuilder accumulates field-scoped validation failures and produces
// a single ValidationError whose shape mirrors the accumulated tree
// (§4.1). It is the mechanism containers and Object use to report every
// simultaneously discoverable problem from one Load call instead of
// failing fast on the first error.
//
// An ErrorBuilder is not safe for concurrent use; each Load call
// constructs its own.
type ErrorBuilder struct {
	root map[string]*ValidationError
}

// NewErrorBuilder creates an empty builder.
func NewErrorBuilder() *ErrorBuilder {
	return &ErrorBuilder{root: map[string]*ValidationError{}}
}

// AddError records a leaf message at path. path is a dotted string
// ("foo.bar") or a bracketed index ("items[3].name"); segments are parsed
// left to right and inserted into the accumulated tree, merging with
// anything already recorded at that position.
func (b *ErrorBuilder) AddError(path string, message string) {
	b.AddValidationError(path, Leaf(message))
}

// AddValidationError merges an existing ValidationError (which may itself
// be nested, e.g. one produced by a nested Type's Load) at path.
func (b *ErrorBuilder) AddValidationError(path string, err *ValidationError) {
	if err == nil {
		return
	}
	segs := parsePath(path)
	if len(segs) == 0 {
		// Whole-object error: merge directly into the root tree's "" slot
		// so it survives alongside per-field errors (§4.7 step 7).
		b.mergeAt("", err)
		return
	}
	wrapped := err
	for i := len(segs) - 1; i > 0; i-- {
		wrapped = Nested(map[string]*ValidationError{segs[i]: wrapped})
	}
	b.mergeAt(segs[0], wrapped)
}

func (b *ErrorBuilder) mergeAt(key string, err *ValidationError) {
	if existing, ok := b.root[key]; ok {
		b.root[key] = existing.merge(err)
	} else {
		b.root[key] = err
	}
}

// HasErrors reports whether any error has been recorded.
func (b *ErrorBuilder) HasErrors() bool {
	return len(b.root) > 0
}

// RaiseErrors returns nil if nothing was recorded, or a ValidationError
// (as an error) whose shape mirrors the accumulated tree otherwise.
func (b *ErrorBuilder) RaiseErrors() error {
	if !b.HasErrors() {
		return nil
	}
	if whole, ok := b.root[""]; ok && len(b.root) == 1 {
		return whole
	}
	children := make(map[string]*ValidationError, len(b.root))
	for k, v := range b.root {
		children[k] = v
	}
	return Nested(children)
}

// parsePath splits a dotted/bracketed path string into ordered segments.
// "foo.bar" -> ["foo", "bar"]; "items[3].name" -> ["items", "3", "name"].
func parsePath(path string) []string {
	if path == "" {
		return nil
	}
	var segs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}
	i := 0
	for i < len(path) {
		c := path[i]
		switch c {
		case '.':
			flush()
			i++
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				cur.WriteString(path[i:])
				i = len(path)
				break
			}
			idx := path[i+1 : i+end]
			segs = append(segs, idx)
			i += end + 1
			if i < len(path) && path[i] == '.' {
				i++
			}
		default:
			cur.WriteByte(c)
			i++
		}
	}
	flush()
	return segs
}

// indexSeg renders a list index as a path segment (used by containers
// when attaching per-element errors, §4.4).
func indexSeg(i int) string {
	return strconv.Itoa(i)
}
