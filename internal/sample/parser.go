// Package sample implements the incremental byte-stream parsers that keep
// model output inside the reasoning-step grammar.
//
// Every parser follows the same protocol: input arrives in arbitrary chunks,
// and each call to Parse threads an immutable State snapshot so parsing can
// resume exactly where the previous chunk stopped. A call either finishes
// with a value and the unconsumed remainder, reports Incomplete with a new
// snapshot and a required-next hint, or fails, meaning this branch can never
// succeed on this input.
//
// The required-next hint is a true lower bound: every byte sequence that can
// still lead the parser to a finished match must begin with the hint. Callers
// use it to prune candidate continuations before generating them, so an
// over-long or wrong hint causes false rejection rather than wasted work. A
// parser that cannot commit to anything returns an empty hint.
//
// Parsers hold no mutable fields. The same parser value may be used from any
// number of goroutines as long as each call supplies its own State; a caller
// may keep one checkpoint and evaluate many speculative continuations from it
// without copying or locking.
package sample

// State is an immutable snapshot of parse progress. Snapshots are produced
// fresh on every call and are never updated in place, so holding several
// independent copies for speculative continuation is always safe.
//
// The set of implementations is closed: states are created by the parsers in
// this package and carry no meaning outside the parser that produced them.
type State interface {
	isState()
}

// Parser consumes input in chunks, resuming from the given State.
type Parser interface {
	// NewState returns the snapshot a parse session starts from.
	NewState() State

	// Parse consumes input against state. It must be deterministic:
	// identical (state, input) pairs always yield the identical result.
	// A returned error means this parser can never succeed on this input.
	Parse(state State, input []byte) (Result, error)
}

// Result is the outcome of one successful Parse call.
//
// Exactly one of the two shapes is populated: a finished match carries Value
// and Remaining, an incomplete one carries State and RequiredNext.
type Result struct {
	// Finished reports whether the parser matched completely.
	Finished bool

	// Value is the payload of a finished match: the decoded line for a line
	// parser, the branch position for an index parser, the stage values for
	// a sequence, nil for a literal.
	Value any

	// Remaining holds the unconsumed bytes after a finished match.
	Remaining []byte

	// State is the resumable snapshot of an incomplete match.
	State State

	// RequiredNext is the byte prefix every viable continuation of an
	// incomplete match must begin with. Empty when the parser cannot commit
	// to any prefix.
	RequiredNext []byte
}

// Finished builds a completed Result.
func Finished(value any, remaining []byte) Result {
	return Result{Finished: true, Value: value, Remaining: remaining}
}

// Incomplete builds a resumable Result.
func Incomplete(state State, requiredNext []byte) Result {
	return Result{State: state, RequiredNext: requiredNext}
}

// commonPrefix returns the longest shared prefix of two hints. The result
// aliases a, so callers treat it as read-only like every other hint.
func commonPrefix(a, b []byte) []byte {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}
