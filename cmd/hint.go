package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/hints"
	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/problemgen"
)

var hintCmd = &cobra.Command{
	Use:   `hint "<question>"`,
	Short: "Ask the configured LLM for a hint",
	Example: `  mathwhiz hint "7 + 5 = ?"
  mathwhiz hint 12 x 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question, err := normalizeQuestion(strings.Join(args, " "))
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		svc, err := hints.NewService(provider, e.cfg.HintService(), hints.WithEventRepo(e.store.EventRepo()))
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeCLIHint)
		res := svc.Lookup(ctx, "", "", question)
		fmt.Println(res.Text)
		if res.Source == hints.SourceFallback {
			return fmt.Errorf("no hint generated")
		}
		return nil
	},
}

var asciiOperators = strings.NewReplacer("x", "×", "X", "×", "*", "×", "/", "÷")

// normalizeQuestion accepts typed variants such as "12 x 3" or "8/2=?" and
// renders them the way the game shows questions.
func normalizeQuestion(q string) (string, error) {
	q = strings.TrimSpace(asciiOperators.Replace(q))
	if !strings.Contains(q, "=") {
		q += " = ?"
	}
	a, op, b, err := problemgen.ParseQuestion(q)
	if err != nil {
		return "", fmt.Errorf("not a puzzle question: %w", err)
	}
	return problemgen.RenderQuestion(a, op, b), nil
}
