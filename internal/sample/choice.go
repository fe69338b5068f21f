package sample

// Alt reports which side of a Choice produced a finished value.
type Alt struct {
	// Right is true when the right alternative matched.
	Right bool
	// Value is the matching side's value.
	Value any
}

// Choice is an ordered alternative of two parsers. The left side is
// attempted first on every call and wins when both sides finish on the same
// chunk; the right side's finish is committed as soon as it occurs otherwise,
// including while the left side is still incomplete. Priority orders finishes
// within a call only: the choice never holds a finished right side open
// waiting for the left to fail, so alternatives whose matches can overlap
// must be ordered with the preferred side finishing no later than the other.
// While both sides are incomplete their states advance simultaneously and
// their required-next hints intersect to the longest common prefix. A side
// that rejects is dead for the remainder of the session; the choice itself
// fails only once both sides are dead, surfacing the right side's error.
type Choice struct {
	left  Parser
	right Parser
}

// NewChoice builds an ordered alternative of left and right.
func NewChoice(left, right Parser) *Choice {
	return &Choice{left: left, right: right}
}

type choiceState struct {
	// A nil side state marks that side dead; its rejection is kept so the
	// error is not silently swallowed if the other side dies too.
	left     State
	right    State
	leftErr  error
	rightErr error
}

func (choiceState) isState() {}

// NewState implements Parser.
func (p *Choice) NewState() State {
	return choiceState{left: p.left.NewState(), right: p.right.NewState()}
}

// Parse implements Parser.
func (p *Choice) Parse(state State, input []byte) (Result, error) {
	st := state.(choiceState)
	next := st

	var leftHint []byte
	leftAlive := false
	if st.left != nil {
		res, err := p.left.Parse(st.left, input)
		switch {
		case err != nil:
			next.left, next.leftErr = nil, err
		case res.Finished:
			return Finished(Alt{Value: res.Value}, res.Remaining), nil
		default:
			next.left = res.State
			leftHint = res.RequiredNext
			leftAlive = true
		}
	}

	var rightHint []byte
	rightAlive := false
	if st.right != nil {
		res, err := p.right.Parse(st.right, input)
		switch {
		case err != nil:
			next.right, next.rightErr = nil, err
		case res.Finished:
			return Finished(Alt{Right: true, Value: res.Value}, res.Remaining), nil
		default:
			next.right = res.State
			rightHint = res.RequiredNext
			rightAlive = true
		}
	}

	switch {
	case leftAlive && rightAlive:
		return Incomplete(next, commonPrefix(leftHint, rightHint)), nil
	case leftAlive:
		return Incomplete(next, leftHint), nil
	case rightAlive:
		return Incomplete(next, rightHint), nil
	}
	if next.rightErr != nil {
		return Result{}, next.rightErr
	}
	return Result{}, next.leftErr
}
