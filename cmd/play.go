package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/app"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/screens"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game straight away",
	Long: `Start a game without stopping at the home screen. --tier and --length
apply to this run only; the stored settings are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var tier *problemgen.Tier
		if v, _ := cmd.Flags().GetString("tier"); v != "" {
			t, err := problemgen.ParseTier(v)
			if err != nil {
				return err
			}
			tier = &t
		}

		var length *int
		if cmd.Flags().Changed("length") {
			n, _ := cmd.Flags().GetInt("length")
			if n < 0 {
				return fmt.Errorf("--length must be >= 0, got %d", n)
			}
			length = &n
		}

		return runApp(cmd, app.Options{StartGame: true}, func(d *screens.Deps) {
			if tier != nil {
				d.TierOverride = tier
			}
			if length != nil {
				d.LengthOverride = length
			}
		})
	},
}

func init() {
	playCmd.Flags().String("tier", "", "Difficulty tier for this game: easy, medium or hard")
	playCmd.Flags().Int("length", 0, "Answers per game for this run (0 = unlimited)")
}
