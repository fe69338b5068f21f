package tools

import (
	"go.uber.org/zap"

	"tokenrail/internal/logging"
	"tokenrail/internal/sample"
)

// Literal prefixes of the three step forms, plus the Observation prefix the
// surrounding loop appends between steps. Observation lines are loop output
// and are never parsed by the step grammar.
const (
	ThoughtPrefix     = "Thought: "
	ActionPrefix      = "Action: "
	AnswerPrefix      = "Final Answer: "
	ObservationPrefix = "Observation: "
)

// BranchMarkers builds the Action-selection grammar: an index parser whose
// branch i is the literal two-line marker "<name>\n<input instruction>" of
// capability i. The finished value is the branch position, which maps back
// to a capability via At.
//
// The marker text is baked in at build time. Returns ErrNoCapabilities for
// an empty registry rather than constructing an index with zero branches.
func (r *Registry) BranchMarkers() (*sample.Index, error) {
	caps := r.snapshot()
	if len(caps) == 0 {
		return nil, ErrNoCapabilities
	}

	branches := make([]sample.Parser, len(caps))
	for i, c := range caps {
		branches[i] = sample.NewLiteral(c.Name() + "\n" + c.InputInstruction())
	}
	logging.L(logging.SubsystemGrammar).Debug("built branch markers",
		zap.Int("branches", len(branches)))
	return sample.NewIndex(branches...), nil
}

// ThoughtGrammar matches one Thought step: the literal prefix followed by a
// non-blank line.
func (r *Registry) ThoughtGrammar() sample.Parser {
	return sample.NewSequence(sample.NewLiteral(ThoughtPrefix), sample.Line{})
}

// ActionGrammar matches one Action step: the literal prefix, then exactly
// one registered capability's marker, then the one-line argument. Stages
// run in strict left-to-right order. Returns ErrNoCapabilities for an empty
// registry.
func (r *Registry) ActionGrammar() (sample.Parser, error) {
	markers, err := r.BranchMarkers()
	if err != nil {
		return nil, err
	}
	return sample.NewSequence(sample.NewLiteral(ActionPrefix), markers, sample.Line{}), nil
}

// AnswerGrammar matches one Final-Answer step: the literal prefix followed
// by a non-blank line.
func (r *Registry) AnswerGrammar() sample.Parser {
	return sample.NewSequence(sample.NewLiteral(AnswerPrefix), sample.Line{})
}

// StepGrammar matches any single reasoning step, attempting Thought, then
// Action, then Answer in that order. Decode the finished value with
// DecodeStep. Returns ErrNoCapabilities for an empty registry, since the
// Action alternative cannot exist without capabilities.
func (r *Registry) StepGrammar() (sample.Parser, error) {
	action, err := r.ActionGrammar()
	if err != nil {
		return nil, err
	}
	return sample.NewChoice(
		sample.NewChoice(r.ThoughtGrammar(), action),
		r.AnswerGrammar(),
	), nil
}
