package sample

import (
	"errors"
	"fmt"
	"testing"
)

func literalIndex(texts ...string) *Index {
	branches := make([]Parser, len(texts))
	for i, text := range texts {
		branches[i] = NewLiteral(text)
	}
	return NewIndex(branches...)
}

func TestIndexResolvesEachBranch(t *testing.T) {
	texts := []string{"search\nquery:", "calculator\nexpression:", "lookup\ndocument:"}
	p := literalIndex(texts...)

	for want, text := range texts {
		res, err := p.Parse(p.NewState(), []byte(text+"extra"))
		if err != nil {
			t.Fatalf("branch %d rejected: %v", want, err)
		}
		if !res.Finished {
			t.Fatalf("branch %d did not finish", want)
		}
		if got := res.Value.(int); got != want {
			t.Errorf("position = %d, want %d", got, want)
		}
		if got := string(res.Remaining); got != "extra" {
			t.Errorf("remaining = %q, want %q", got, "extra")
		}
	}
}

// Registration order is the priority order: when an earlier branch is a
// prefix of a later one, the earlier branch wins the moment it completes.
func TestIndexRegistrationOrderBeatsLongestMatch(t *testing.T) {
	p := literalIndex("ab", "abc")
	res, err := p.Parse(p.NewState(), []byte("abc"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !res.Finished {
		t.Fatal("expected finished result")
	}
	if got := res.Value.(int); got != 0 {
		t.Errorf("position = %d, want 0", got)
	}
	if got := string(res.Remaining); got != "c" {
		t.Errorf("remaining = %q, want %q", got, "c")
	}
}

func TestIndexHintIntersection(t *testing.T) {
	tests := []struct {
		name     string
		branches []string
		input    string
		wantHint string
	}{
		{
			name:     "shared prefix survives",
			branches: []string{"search\nquery:", "send\nrecipient:"},
			input:    "s",
			wantHint: "e",
		},
		{
			name:     "divergence at first byte yields empty hint",
			branches: []string{"search\nquery:", "calculator\nexpression:"},
			input:    "",
			wantHint: "",
		},
		{
			name:     "single viable branch keeps its full hint",
			branches: []string{"search\nquery:", "calculator\nexpression:"},
			input:    "sea",
			wantHint: "rch\nquery:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := literalIndex(tt.branches...)
			res, err := p.Parse(p.NewState(), []byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if res.Finished {
				t.Fatal("expected Incomplete")
			}
			if got := string(res.RequiredNext); got != tt.wantHint {
				t.Errorf("hint = %q, want %q", got, tt.wantHint)
			}
		})
	}
}

// The merged hint must be a true common prefix: never longer than any alive
// branch's own hint and never diverging from a byte a branch requires.
func TestIndexHintIsTrueLowerBound(t *testing.T) {
	branches := []string{"alpha\none:", "alphabet\ntwo:", "alpine\nthree:"}
	p := literalIndex(branches...)

	for _, prefix := range []string{"", "a", "al", "alp"} {
		res, err := p.Parse(p.NewState(), []byte(prefix))
		if err != nil {
			t.Fatalf("prefix %q rejected: %v", prefix, err)
		}
		merged := string(res.RequiredNext)

		// Re-derive the intersection directly from each branch still alive
		// on this prefix and compare.
		want := ""
		first := true
		for _, text := range branches {
			lit := NewLiteral(text)
			r, err := lit.Parse(lit.NewState(), []byte(prefix))
			if err != nil {
				continue
			}
			hint := string(r.RequiredNext)
			if first {
				want, first = hint, false
				continue
			}
			want = string(commonPrefix([]byte(want), []byte(hint)))
		}
		if merged != want {
			t.Errorf("prefix %q: merged hint %q, want %q", prefix, merged, want)
		}
	}
}

func TestIndexDeadBranchStaysDead(t *testing.T) {
	p := literalIndex("search\nquery:", "calculator\nexpression:")

	res, err := p.Parse(p.NewState(), []byte("c"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The first branch died on 'c'; even bytes that would have matched it
	// cannot revive it.
	res, err = p.Parse(res.State, []byte("alculator\n"))
	if err != nil {
		t.Fatalf("continuation failed: %v", err)
	}
	final, err := p.Parse(res.State, []byte("expression:"))
	if err != nil {
		t.Fatalf("final chunk failed: %v", err)
	}
	if !final.Finished {
		t.Fatal("expected finished result")
	}
	if got := final.Value.(int); got != 1 {
		t.Errorf("position = %d, want 1", got)
	}
}

func TestIndexAllBranchesDead(t *testing.T) {
	p := literalIndex("search\nquery:", "calculator\nexpression:")
	_, err := p.Parse(p.NewState(), []byte("unknown"))
	if !errors.Is(err, ErrLiteralMismatch) {
		t.Errorf("err = %v, want the final branch's rejection", err)
	}
}

// A final branch that died on an earlier call surfaces its stored error the
// moment no sibling is viable either.
func TestIndexStoredErrorPropagates(t *testing.T) {
	p := literalIndex("aa", "b")

	// Kills the last branch, first branch stays alive.
	res, err := p.Parse(p.NewState(), []byte("a"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// Kills the first branch too; the stored rejection of the last branch
	// becomes the overall failure.
	if _, err := p.Parse(res.State, []byte("x")); !errors.Is(err, ErrLiteralMismatch) {
		t.Errorf("err = %v, want ErrLiteralMismatch", err)
	}
}

func TestIndexChunkIndependence(t *testing.T) {
	p := literalIndex("search\nquery:", "send\nrecipient:", "calculator\nexpression:")
	requireChunkIndependence(t, p, "send\nrecipient:leftover")
}

func TestIndexManyBranches(t *testing.T) {
	var texts []string
	for i := 0; i < 20; i++ {
		texts = append(texts, fmt.Sprintf("capability%02d\ninput:", i))
	}
	p := literalIndex(texts...)

	res, err := p.Parse(p.NewState(), []byte("capability17\ninput:"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !res.Finished {
		t.Fatal("expected finished result")
	}
	if got := res.Value.(int); got != 17 {
		t.Errorf("position = %d, want 17", got)
	}
}
