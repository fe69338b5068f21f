package sample

// Literal matches an exact byte sequence and produces no value.
//
// While incomplete, its required-next hint is the entire unmatched tail of
// the literal, which is what lets an index parser over capability markers
// steer a sampler toward the only viable spellings.
type Literal struct {
	text []byte
}

// NewLiteral returns a parser for the exact text.
func NewLiteral(text string) *Literal {
	return &Literal{text: []byte(text)}
}

// String returns the literal text.
func (p *Literal) String() string {
	return string(p.text)
}

type literalState struct {
	offset int
}

func (literalState) isState() {}

// NewState implements Parser.
func (p *Literal) NewState() State {
	return literalState{}
}

// Parse implements Parser.
func (p *Literal) Parse(state State, input []byte) (Result, error) {
	st := state.(literalState)
	rest := p.text[st.offset:]
	for i, b := range input {
		if i >= len(rest) {
			return Finished(nil, input[i:]), nil
		}
		if b != rest[i] {
			return Result{}, ErrLiteralMismatch
		}
	}
	if len(input) >= len(rest) {
		return Finished(nil, input[len(rest):]), nil
	}
	next := literalState{offset: st.offset + len(input)}
	return Incomplete(next, p.text[next.offset:]), nil
}
