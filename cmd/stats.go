package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/screens/stats"
	"github.com/abhisek/mathwhiz/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show high scores and recent games",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		highScores := session.HighScores(ctx, e.store.KV())
		totals, err := e.store.EventRepo().TierTotals(ctx)
		if err != nil {
			return fmt.Errorf("query totals: %w", err)
		}
		byTier := make(map[string]int, len(totals))
		for i, t := range totals {
			byTier[t.Tier] = i
		}

		fmt.Println("High Scores")
		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%-8s  %-22s  %6s  %8s  %8s\n", "Tier", "Range", "Best", "Answers", "Accuracy")
		fmt.Println(strings.Repeat("─", 60))
		for _, tier := range problemgen.AllTiers {
			answers, acc := 0, "-"
			if i, ok := byTier[tier.String()]; ok {
				t := totals[i]
				answers = t.Answers
				acc = fmt.Sprintf("%d%%", session.Accuracy(t.Correct, t.Answers-t.Correct))
			}
			fmt.Printf("%-8s  %-22s  %6d  %8d  %8s\n", tier, tier.Description(), highScores[tier], answers, acc)
		}

		sessions, err := e.store.EventRepo().RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		fmt.Println()
		fmt.Println("Recent Games")
		fmt.Println(strings.Repeat("─", 60))
		if len(sessions) == 0 {
			fmt.Println("No games played yet.")
			return nil
		}
		for _, s := range sessions {
			fmt.Println(stats.FormatSession(s))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent games to show")
}
