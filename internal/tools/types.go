// Package tools defines the capability contract and the registry that turns
// registered capabilities into the grammar for one reasoning step.
//
// A reasoning step is one Thought, Action, or Final-Answer unit of the
// structured transcript:
//
//	Thought: <non-blank line>
//	Action: <capability name>
//	<capability input instruction>
//	<one-line argument>
//	Observation: <text>            (appended by the surrounding loop)
//	Final Answer: <non-blank line>
//
// The registry builds the literal markers, the instruction prompt, and the
// composite step grammar; running the loop, sampling, and appending
// Observation lines belong to the caller.
package tools

import (
	"context"
	"time"
)

// Capability is a named action a model may select during an Action step.
//
// Name and InputInstruction are embedded verbatim as grammar literals, so a
// capability whose instruction changes invalidates every grammar built from
// it: rebuild after any change. Name is also the lookup key and is assumed
// unique across a registry; lookup returns the first match.
type Capability interface {
	// Name identifies the capability. One line, no terminator.
	Name() string

	// InputInstruction is the fixed phrase prompting for the argument line.
	// One line, no terminator.
	InputInstruction() string

	// Description is free text shown only in the instruction prompt.
	Description() string

	// Invoke consumes one line of argument text and produces one line of
	// result text. It may perform network or local I/O; the surrounding
	// loop invokes at most one capability at a time.
	Invoke(ctx context.Context, argument string) (string, error)
}

// InvokeResult wraps one capability invocation with metadata.
type InvokeResult struct {
	// Capability is the name of the capability that ran.
	Capability string

	// Output is the one-line result text.
	Output string

	// Duration is how long the invocation took.
	Duration time.Duration
}
