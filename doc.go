// Package lollipop implements a small, composable type combinator kernel
// for converting between an external, JSON-like value universe and an
// internal application value universe.
//
// A Type is an immutable, bidirectional codec plus validator: Load maps
// external -> internal, Dump maps internal -> external, and Validate runs
// Load and reports the structured error shape instead of raising it.
// Types compose: primitives (String, Integer, ...) combine with
// containers (List, Tuple, Dict), modifiers (Optional, Constant,
// LoadOnly, DumpOnly, Transform), the Object record codec, the
// polymorphic OneOf dispatcher, and a forward-reference TypeRegistry for
// cyclic schemas.
//
// # Layers
//
//	Foundation tier (no internal dependencies):
//	  - value.go:    the external value universe (Value) and the MISSING sentinel
//	  - errors.go:   path-addressable ValidationError and the accumulating ErrorBuilder
//	  - validator.go: the Validator interface, arity adaptation, built-in validators
//
//	Core kernel tier:
//	  - type.go:       the Type interface and the shared load/dump plumbing
//	  - primitives.go: scalar codecs (Any, String, Integer, Float, Boolean, Date, Time, DateTime)
//	  - containers.go: List, Tuple, Dict
//	  - modifiers.go:  Constant, Optional, LoadOnly, DumpOnly, Transform
//	  - field.go:      the Field abstraction (AttributeField, IndexField, MethodField, ...)
//	  - object.go:     the Object record codec (inheritance, partial update, validation)
//	  - oneof.go:      polymorphic dispatch across variants
//	  - registry.go:   named, lazy forward references for cyclic schemas
//
//	Derivation helpers:
//	  - validated_type.go: derive a new Type by prepending a validator
//	  - derived.go:        concrete example types built from the above (UUID, ...)
//
// The kernel never touches a byte stream or a file: it operates entirely
// on in-memory Value trees. jsonvalue.go is the one bridge to a concrete
// encoding (encoding/json), kept separate from the kernel proper; other
// surface language bindings and I/O are left to callers.
package lollipop
