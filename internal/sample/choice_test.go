package sample

import (
	"errors"
	"testing"
)

func answerChoice() *Choice {
	return NewChoice(
		NewSequence(NewLiteral("Thought: "), Line{}),
		NewSequence(NewLiteral("Final Answer: "), Line{}),
	)
}

func TestChoiceLeftWins(t *testing.T) {
	p := answerChoice()
	res, err := p.Parse(p.NewState(), []byte("Thought: consider\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !res.Finished {
		t.Fatal("expected finished result")
	}
	alt := res.Value.(Alt)
	if alt.Right {
		t.Error("resolved via right alternative, want left")
	}
	if got := alt.Value.([]any)[1].(string); got != "consider" {
		t.Errorf("value = %q, want %q", got, "consider")
	}
}

func TestChoiceCommitsRightAfterLeftDies(t *testing.T) {
	p := answerChoice()

	res, err := p.Parse(p.NewState(), []byte("Final "))
	if err != nil {
		t.Fatalf("prefix rejected: %v", err)
	}
	if res.Finished {
		t.Fatal("finished early")
	}

	final, err := p.Parse(res.State, []byte("Answer: 42\n"))
	if err != nil {
		t.Fatalf("continuation rejected: %v", err)
	}
	if !final.Finished {
		t.Fatal("expected finished result")
	}
	alt := final.Value.(Alt)
	if !alt.Right {
		t.Error("resolved via left alternative, want right")
	}
	if got := alt.Value.([]any)[1].(string); got != "42" {
		t.Errorf("value = %q, want %q", got, "42")
	}
}

// While both sides are incomplete, both advance and their hints intersect.
func TestChoiceTracksBothSides(t *testing.T) {
	p := NewChoice(NewLiteral("Thought: "), NewLiteral("Thorough: "))

	res, err := p.Parse(p.NewState(), []byte("Tho"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if res.Finished {
		t.Fatal("expected Incomplete")
	}
	// "ught: " vs "rough: " share nothing.
	if len(res.RequiredNext) != 0 {
		t.Errorf("hint = %q, want empty", res.RequiredNext)
	}

	// Shared prefix still pending on both sides.
	res, err = p.Parse(p.NewState(), []byte("Th"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := string(res.RequiredNext); got != "o" {
		t.Errorf("hint = %q, want %q", got, "o")
	}
}

// A finished right side commits immediately even while the left side could
// still match with more input: priority orders finishes within a call, it
// does not hold the right open until the left dies.
func TestChoiceRightFinishCommitsWhileLeftPending(t *testing.T) {
	p := NewChoice(NewLiteral("abX"), NewLiteral("ab"))

	res, err := p.Parse(p.NewState(), []byte("ab"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !res.Finished {
		t.Fatal("expected the right side's finish to commit")
	}
	alt := res.Value.(Alt)
	if !alt.Right {
		t.Error("resolved via left alternative, want right")
	}
	if len(res.Remaining) != 0 {
		t.Errorf("remaining = %q, want empty", res.Remaining)
	}
}

func TestChoiceBothDead(t *testing.T) {
	p := answerChoice()
	_, err := p.Parse(p.NewState(), []byte("Observation: x\n"))
	if !errors.Is(err, ErrLiteralMismatch) {
		t.Errorf("err = %v, want ErrLiteralMismatch", err)
	}
}

func TestChoiceDeadSideStaysDead(t *testing.T) {
	p := answerChoice()

	// "F" kills the Thought side immediately.
	res, err := p.Parse(p.NewState(), []byte("F"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := string(res.RequiredNext); got != "inal Answer: " {
		t.Errorf("hint = %q, want right side's tail", got)
	}

	// Bytes that would re-match the left side cannot revive it.
	if _, err := p.Parse(res.State, []byte("Thought: x\n")); !errors.Is(err, ErrLiteralMismatch) {
		t.Errorf("err = %v, want ErrLiteralMismatch", err)
	}
}

func TestChoiceChunkIndependence(t *testing.T) {
	requireChunkIndependence(t, answerChoice(), "Final Answer: the result\nleftover")
}
