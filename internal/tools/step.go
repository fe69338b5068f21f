package tools

import (
	"fmt"

	"tokenrail/internal/sample"
)

// StepKind identifies which alternative of the step grammar matched.
type StepKind int

const (
	// StepThought is a "Thought: <line>" step.
	StepThought StepKind = iota
	// StepAction is an "Action: <marker><argument line>" step.
	StepAction
	// StepAnswer is a "Final Answer: <line>" step.
	StepAnswer
)

// String returns the step kind's transcript label.
func (k StepKind) String() string {
	switch k {
	case StepThought:
		return "Thought"
	case StepAction:
		return "Action"
	case StepAnswer:
		return "Final Answer"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is the decoded value of one finished step-grammar parse.
type Step struct {
	Kind StepKind

	// Thought is set for StepThought.
	Thought string

	// ActionIndex and ActionInput are set for StepAction. ActionIndex is
	// the registry position of the selected capability.
	ActionIndex int
	ActionInput string

	// Answer is set for StepAnswer.
	Answer string
}

// DecodeStep maps the raw combinator value of a finished StepGrammar parse
// onto a Step. The value shape follows the grammar's construction:
// Choice(Choice(thought, action), answer), where thought and answer are
// two-stage sequences and action is a three-stage sequence.
func DecodeStep(value any) (Step, error) {
	outer, ok := value.(sample.Alt)
	if !ok {
		return Step{}, fmt.Errorf("%w: %T", ErrMalformedStep, value)
	}

	if outer.Right {
		answer, err := lineValue(outer.Value, 2)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepAnswer, Answer: answer}, nil
	}

	inner, ok := outer.Value.(sample.Alt)
	if !ok {
		return Step{}, fmt.Errorf("%w: %T", ErrMalformedStep, outer.Value)
	}
	if !inner.Right {
		thought, err := lineValue(inner.Value, 2)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepThought, Thought: thought}, nil
	}

	stages, ok := inner.Value.([]any)
	if !ok || len(stages) != 3 {
		return Step{}, fmt.Errorf("%w: action stages %T", ErrMalformedStep, inner.Value)
	}
	index, ok := stages[1].(int)
	if !ok {
		return Step{}, fmt.Errorf("%w: action index %T", ErrMalformedStep, stages[1])
	}
	input, ok := stages[2].(string)
	if !ok {
		return Step{}, fmt.Errorf("%w: action input %T", ErrMalformedStep, stages[2])
	}
	return Step{Kind: StepAction, ActionIndex: index, ActionInput: input}, nil
}

// lineValue extracts the final line of a prefix+line sequence value.
func lineValue(value any, stages int) (string, error) {
	parts, ok := value.([]any)
	if !ok || len(parts) != stages {
		return "", fmt.Errorf("%w: sequence %T", ErrMalformedStep, value)
	}
	line, ok := parts[stages-1].(string)
	if !ok {
		return "", fmt.Errorf("%w: line %T", ErrMalformedStep, parts[stages-1])
	}
	return line, nil
}
