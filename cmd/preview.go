package cmd

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathwhiz/internal/problemgen"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print and validate generated puzzles (no database)",
	Long: `Generate a batch of puzzles for a tier and check each one with the
structural and math validators. With --answer the puzzles are asked one by
one on stdin.

This is a stateless developer tool: no database, no scores, no events.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("tier", "easy", "Difficulty tier: easy, medium or hard")
	previewCmd.Flags().Int("count", 10, "Number of puzzles to generate")
	previewCmd.Flags().Uint64("seed", 0, "Seed for a reproducible batch (0 = random)")
	previewCmd.Flags().Bool("answer", false, "Answer the puzzles interactively")
}

type previewItem struct {
	puzzle problemgen.Puzzle
	err    error
}

func runPreview(cmd *cobra.Command, args []string) error {
	tierVal, _ := cmd.Flags().GetString("tier")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	interactive, _ := cmd.Flags().GetBool("answer")

	tier, err := problemgen.ParseTier(tierVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	var opts []problemgen.Option
	if seed != 0 {
		opts = append(opts, problemgen.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	gen := problemgen.New(opts...)

	items, err := generateBatch(cmd, gen, tier, count, seed != 0)
	if err != nil {
		return err
	}

	fmt.Printf("Tier: %s (%s)\n\n", tier, tier.Description())
	if interactive {
		return askBatch(items)
	}

	var failed int
	for i, it := range items {
		p := it.puzzle
		status := "\033[32m✓\033[0m"
		if it.err != nil {
			status = "\033[31m✗\033[0m"
			failed++
		}
		fmt.Printf("%3d. %s %-14s  options %v  answer %d\n", i+1, status, p.Question, p.Options, p.CorrectAnswer)
		if it.err != nil {
			fmt.Printf("     %v\n", it.err)
		}
	}

	fmt.Printf("\n── %d/%d puzzles valid ──\n", count-failed, count)
	if failed > 0 {
		return fmt.Errorf("%d puzzles failed validation", failed)
	}
	return nil
}

// generateBatch builds count puzzles and validates them on a bounded worker
// group. A seeded batch is generated in order first so it stays
// reproducible; only validation then runs concurrently.
func generateBatch(cmd *cobra.Command, gen problemgen.Generator, tier problemgen.Tier, count int, ordered bool) ([]previewItem, error) {
	items := make([]previewItem, count)
	if ordered {
		for i := range items {
			items[i].puzzle = gen.Generate(tier)
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !ordered {
				items[i].puzzle = gen.Generate(tier)
			}
			items[i].err = problemgen.Validate(&items[i].puzzle, problemgen.DefaultValidators()...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func askBatch(items []previewItem) error {
	scanner := bufio.NewScanner(os.Stdin)
	var correct int

	for i, it := range items {
		p := it.puzzle
		fmt.Printf("── Puzzle %d/%d ──\n", i+1, len(items))
		fmt.Println(p.Question)
		for j, o := range p.Options {
			fmt.Printf("  %d) %d\n", j+1, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		choice, err := problemgen.ParseChoice(answer, &p)
		if err != nil {
			fmt.Printf("%v\n\n", err)
			continue
		}
		if p.Check(choice) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %d\n", p.CorrectAnswer)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(items))
	return scanner.Err()
}
