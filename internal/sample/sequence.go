package sample

// Sequence runs its stages in strict left-to-right order: a stage must fully
// finish before the next stage begins consuming. When a stage finishes with
// bytes left over, the remainder is fed into the next stage within the same
// call. When a stage finishes exactly at a chunk boundary, the sequence
// reports Incomplete with the next stage primed but not yet invoked, so the
// next chunk observes the same behavior as an unchunked parse.
//
// The finished value is a []any holding each stage's value in order.
type Sequence struct {
	stages []Parser
}

// NewSequence chains the given stages. At least one stage is required.
func NewSequence(stages ...Parser) *Sequence {
	return &Sequence{stages: stages}
}

type sequenceState struct {
	stage  int
	sub    State
	values []any
}

func (sequenceState) isState() {}

// NewState implements Parser.
func (p *Sequence) NewState() State {
	return sequenceState{sub: p.stages[0].NewState()}
}

// Parse implements Parser.
func (p *Sequence) Parse(state State, input []byte) (Result, error) {
	st := state.(sequenceState)
	stage := st.stage
	sub := st.sub
	values := append([]any(nil), st.values...)

	for {
		res, err := p.stages[stage].Parse(sub, input)
		if err != nil {
			return Result{}, err
		}
		if !res.Finished {
			next := sequenceState{stage: stage, sub: res.State, values: values}
			return Incomplete(next, res.RequiredNext), nil
		}

		values = append(values, res.Value)
		input = res.Remaining
		stage++
		if stage == len(p.stages) {
			return Finished(values, input), nil
		}
		sub = p.stages[stage].NewState()
		if len(input) == 0 {
			// Defer the fresh stage to the next chunk rather than invoking
			// it with zero bytes, which a line stage would reject.
			return Incomplete(sequenceState{stage: stage, sub: sub, values: values}, nil), nil
		}
	}
}
