package hints

import (
	"fmt"

	"github.com/abhisek/mathwhiz/internal/llm"
)

const systemPrompt = `You are a cheerful math buddy for young children.
Never give away the final answer. Reply only with JSON matching the schema.`

// Prompt is the user message sent for a question.
func Prompt(question string) string {
	return fmt.Sprintf(
		"Explain how to solve the math problem %q to a 7-year-old child. "+
			"Keep it very short (max 2 sentences). Be encouraging and fun. Use an emoji.",
		question)
}

var schema = &llm.Schema{
	Name:        "math-hint",
	Description: "A short, encouraging hint for a child",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "At most two short sentences with one emoji",
				"minLength":   1,
				"maxLength":   300,
			},
		},
		"required":             []string{"hint"},
		"additionalProperties": false,
	},
}
