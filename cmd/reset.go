package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/settings"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every high score",
	Long:  "Clear the stored high score of every tier. Settings and game history are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("Clear all high scores? [y/N] ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Nothing changed.")
				return nil
			}
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := settings.ResetProgress(cmd.Context(), e.store.KV(), nil); err != nil {
			return err
		}
		fmt.Println("All high scores cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
