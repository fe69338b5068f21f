package tools

import (
	"fmt"
	"strings"
)

// Prompt assembles the human-readable instruction prompt: the fixed
// Thought/Action/Observation/Final-Answer boilerplate, every capability's
// name and description in registration order, and the user's question. This
// is purely textual; the structural constraints live in the grammars.
func (r *Registry) Prompt(question string) string {
	caps := r.snapshot()

	names := make([]string, len(caps))
	sections := make([]string, len(caps))
	for i, c := range caps {
		names[i] = "'" + c.Name() + "'"
		sections[i] = "# " + c.Name() + "\n" + c.Description()
	}

	return fmt.Sprintf(`Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [%s]
Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question

You have access to the following tools:

%s

Begin!

Question: %s
`, strings.Join(names, ", "), strings.Join(sections, "\n\n"), question)
}
