package sample

import (
	"strings"
	"unicode"
)

// Line matches one non-blank line: a run of bytes containing at least one
// non-whitespace byte, terminated by a single '\n' or '\r'. A "\r\n" pair
// resolves at the '\r'; the '\n' is left in the remainder, so feeding that
// leftover byte to a fresh Line immediately rejects as a blank line.
//
// Line never emits a required-next hint, because any byte may legally
// continue or terminate the line.
//
// Calling Parse with zero bytes before any non-whitespace content has been
// seen, including the very first call on a fresh state, rejects rather than
// reporting Incomplete. A line that never receives content is treated as
// malformed, not as pending input; see TestLineEmptyChunkQuirk before
// touching this.
type Line struct{}

type lineState struct {
	// allWhitespace is sticky: it only ever transitions to false.
	allWhitespace bool
	buf           []byte
}

func (lineState) isState() {}

// NewState implements Parser.
func (Line) NewState() State {
	return lineState{allWhitespace: true}
}

// Parse implements Parser.
func (Line) Parse(state State, input []byte) (Result, error) {
	st := state.(lineState)
	if len(input) == 0 {
		if st.allWhitespace {
			return Result{}, ErrBlankLine
		}
		return Incomplete(st, nil), nil
	}

	allWS := st.allWhitespace
	buf := append([]byte(nil), st.buf...)
	for i, b := range input {
		if allWS && !unicode.IsSpace(rune(b)) {
			allWS = false
		}
		if b == '\n' || b == '\r' {
			if allWS {
				return Result{}, ErrBlankLine
			}
			return Finished(decodeLossy(buf), input[i+1:]), nil
		}
		buf = append(buf, b)
	}
	return Incomplete(lineState{allWhitespace: allWS, buf: buf}, nil), nil
}

// decodeLossy converts accumulated bytes to text, substituting the Unicode
// replacement character for invalid UTF-8 instead of failing.
func decodeLossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
