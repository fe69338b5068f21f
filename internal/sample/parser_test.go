package sample

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// feed threads state through the parser, splitting input into chunks of the
// given size. It fails the test if the parser rejects or never finishes.
func feed(t *testing.T, p Parser, input []byte, chunkSize int) Result {
	t.Helper()

	st := p.NewState()
	for len(input) > chunkSize {
		res, err := p.Parse(st, input[:chunkSize])
		if err != nil {
			t.Fatalf("chunk %q rejected: %v", input[:chunkSize], err)
		}
		if res.Finished {
			// Finished mid-stream: splice the unfed tail back on.
			res.Remaining = append(append([]byte(nil), res.Remaining...), input[chunkSize:]...)
			return res
		}
		st = res.State
		input = input[chunkSize:]
	}

	res, err := p.Parse(st, input)
	if err != nil {
		t.Fatalf("final chunk %q rejected: %v", input, err)
	}
	if !res.Finished {
		t.Fatalf("parser never finished, required next %q", res.RequiredNext)
	}
	return res
}

// requireChunkIndependence checks the core invariant that splitting input
// into arbitrary pieces yields the same finished value and remainder as a
// single call.
func requireChunkIndependence(t *testing.T, p Parser, input string) {
	t.Helper()

	whole := feed(t, p, []byte(input), len(input))
	for size := 1; size < len(input); size++ {
		split := feed(t, p, []byte(input), size)
		if diff := cmp.Diff(whole.Value, split.Value); diff != "" {
			t.Fatalf("chunk size %d changed value (-whole +split):\n%s", size, diff)
		}
		if string(whole.Remaining) != string(split.Remaining) {
			t.Fatalf("chunk size %d remainder = %q, want %q", size, split.Remaining, whole.Remaining)
		}
	}
}
