package sample

// Index runs N sibling branches against the same input and resolves, as
// early as possible, which single one is matching. Branches produce no value
// of their own; the index's finished value is the int position of the branch
// that matched first in registration order. First match wins outright, even
// when a later branch would also match the same bytes, so registration order
// is the priority order, not longest-match.
//
// While more than one branch is alive, the index's required-next hint is the
// longest common prefix of the alive branches' own hints; it degrades to
// empty the moment two alive branches disagree on the very next byte. A
// branch that rejects is dead for the rest of the session. The index itself
// fails only once every branch is dead, propagating the last branch's error.
//
// Precondition: at least one branch. The zero-branch case is a caller error
// and must be handled before construction; the capability registry returns
// an absent grammar instead of ever building an empty Index.
type Index struct {
	branches []Parser
}

// NewIndex builds an index over the given branches, which must be non-empty.
func NewIndex(branches ...Parser) *Index {
	return &Index{branches: branches}
}

// Len returns the number of branches.
func (p *Index) Len() int {
	return len(p.branches)
}

// branchState is one branch's slot in the session: Alive carries the sub
// state, Dead carries the rejection that killed it. Dead is permanent.
type branchState struct {
	state State
	err   error
}

func (b branchState) alive() bool { return b.state != nil }

type indexState struct {
	branches []branchState
}

func (indexState) isState() {}

// NewState implements Parser.
func (p *Index) NewState() State {
	branches := make([]branchState, len(p.branches))
	for i, b := range p.branches {
		branches[i] = branchState{state: b.NewState()}
	}
	return indexState{branches: branches}
}

// Parse implements Parser.
func (p *Index) Parse(state State, input []byte) (Result, error) {
	st := state.(indexState)
	branches := append([]branchState(nil), st.branches...)

	last := len(p.branches) - 1
	var hint []byte
	anyIncomplete := false

	for i, branch := range p.branches {
		if !branches[i].alive() {
			// The stored rejection becomes the overall failure once the
			// final branch is reached with nothing still viable.
			if !anyIncomplete && i == last {
				return Result{}, branches[i].err
			}
			continue
		}

		res, err := branch.Parse(branches[i].state, input)
		if err != nil {
			if !anyIncomplete && i == last {
				return Result{}, err
			}
			branches[i] = branchState{err: err}
			continue
		}
		if res.Finished {
			return Finished(i, res.Remaining), nil
		}

		branches[i] = branchState{state: res.State}
		if anyIncomplete {
			hint = commonPrefix(hint, res.RequiredNext)
		} else {
			hint = res.RequiredNext
			anyIncomplete = true
		}
	}

	return Incomplete(indexState{branches: branches}, hint), nil
}
