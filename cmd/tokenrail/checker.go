package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"tokenrail/internal/sample"
	"tokenrail/internal/tools"
)

// Interstitial lines the surrounding loop writes between reasoning steps;
// they are not part of the model's grammar-constrained output.
var loopLinePrefixes = []string{tools.ObservationPrefix, "Observation:", "Question:"}

// transcriptChecker incrementally validates a transcript stream against a
// registry's step grammar. Input arrives in arbitrary chunks; between steps
// the checker buffers one line at a time to separate loop output from the
// start of the next step.
type transcriptChecker struct {
	reg     *tools.Registry
	grammar sample.Parser
	log     *zap.Logger
	out     io.Writer

	// state is nil between steps.
	state    sample.State
	lineBuf  []byte
	lastHint []byte
	offset   int
	steps    int
}

func newTranscriptChecker(reg *tools.Registry, out io.Writer, log *zap.Logger) (*transcriptChecker, error) {
	grammar, err := reg.StepGrammar()
	if err != nil {
		return nil, err
	}
	return &transcriptChecker{reg: reg, grammar: grammar, log: log, out: out}, nil
}

// feed consumes one chunk of transcript bytes.
func (c *transcriptChecker) feed(chunk []byte) error {
	for len(chunk) > 0 {
		if c.state == nil {
			rest, started, err := c.scanBetweenSteps(chunk)
			if err != nil {
				return err
			}
			chunk = rest
			if !started {
				return nil
			}
			continue
		}

		res, err := c.grammar.Parse(c.state, chunk)
		if err != nil {
			return fmt.Errorf("invalid step after byte %d: %w", c.offset, err)
		}
		if !res.Finished {
			c.offset += len(chunk)
			c.state = res.State
			c.lastHint = res.RequiredNext
			return nil
		}

		c.offset += len(chunk) - len(res.Remaining)
		if err := c.finishStep(res.Value); err != nil {
			return err
		}
		chunk = res.Remaining
	}
	return nil
}

// scanBetweenSteps buffers bytes until a full line is available, then either
// skips it as loop output or begins a new step with it. Returns the unread
// tail and whether a step parse is now in progress.
func (c *transcriptChecker) scanBetweenSteps(chunk []byte) ([]byte, bool, error) {
	nl := -1
	for i, b := range chunk {
		if b == '\n' {
			nl = i
			break
		}
	}
	if nl < 0 {
		c.lineBuf = append(c.lineBuf, chunk...)
		return nil, false, nil
	}

	line := append(c.lineBuf, chunk[:nl+1]...)
	c.lineBuf = nil
	rest := chunk[nl+1:]

	if isLoopLine(string(line)) {
		c.offset += len(line)
		return rest, false, nil
	}

	// The line opens a new step; replay it through a fresh grammar state.
	c.state = c.grammar.NewState()
	res, err := c.grammar.Parse(c.state, line)
	if err != nil {
		c.state = nil
		return nil, false, fmt.Errorf("invalid step after byte %d: %w", c.offset, err)
	}
	if !res.Finished {
		c.offset += len(line)
		c.state = res.State
		c.lastHint = res.RequiredNext
		return rest, true, nil
	}

	// A one-line step (Thought or Final Answer) resolves immediately.
	c.offset += len(line) - len(res.Remaining)
	if err := c.finishStep(res.Value); err != nil {
		return nil, false, err
	}
	// Any unconsumed tail of the line precedes the rest of the chunk.
	if len(res.Remaining) > 0 {
		rest = append(append([]byte(nil), res.Remaining...), rest...)
	}
	return rest, false, nil
}

func (c *transcriptChecker) finishStep(value any) error {
	step, err := tools.DecodeStep(value)
	if err != nil {
		return err
	}

	c.state = nil
	c.lastHint = nil
	c.steps++

	switch step.Kind {
	case tools.StepThought:
		fmt.Fprintf(c.out, "step %d  Thought      %s\n", c.steps, step.Thought)
	case tools.StepAction:
		capability := c.reg.At(step.ActionIndex)
		if capability == nil {
			return fmt.Errorf("step %d selects branch %d, which is not in the registry", c.steps, step.ActionIndex)
		}
		fmt.Fprintf(c.out, "step %d  Action       %s(%s)\n", c.steps, capability.Name(), step.ActionInput)
	case tools.StepAnswer:
		fmt.Fprintf(c.out, "step %d  Final Answer %s\n", c.steps, step.Answer)
	}

	c.log.Debug("step resolved",
		zap.Int("step", c.steps),
		zap.Stringer("kind", step.Kind))
	return nil
}

// finish reports the stream's end state. A transcript that stops mid-step is
// invalid; the error carries the minimal bytes any valid continuation needed.
func (c *transcriptChecker) finish() error {
	if c.state == nil && len(c.lineBuf) > 0 {
		// Trailing bytes without a newline: classify them like a line.
		line := string(c.lineBuf)
		c.lineBuf = nil
		if strings.TrimSpace(line) != "" && !isLoopLine(line) {
			c.state = c.grammar.NewState()
			res, err := c.grammar.Parse(c.state, []byte(line))
			if err != nil {
				return fmt.Errorf("invalid step after byte %d: %w", c.offset, err)
			}
			if res.Finished {
				if err := c.finishStep(res.Value); err != nil {
					return err
				}
			} else {
				c.lastHint = res.RequiredNext
			}
		}
	}

	if c.state != nil {
		if len(c.lastHint) > 0 {
			return fmt.Errorf("transcript ends mid-step; continuation must start with %q", c.lastHint)
		}
		return fmt.Errorf("transcript ends mid-step")
	}

	fmt.Fprintf(c.out, "ok: %d steps\n", c.steps)
	return nil
}

func isLoopLine(line string) bool {
	trimmed := strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(trimmed) == "" {
		return true
	}
	for _, prefix := range loopLinePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
