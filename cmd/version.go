package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mathwhiz", version)

		if check, _ := cmd.Flags().GetBool("check"); !check || selfupdate.IsDevBuild(version) {
			return
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		switch {
		case err != nil:
			fmt.Println("Could not check for updates:", err)
		case res.UpdateAvailable:
			fmt.Printf("Version %s is available: %s\nRun: mathwhiz update\n", res.LatestVersion, res.ReleaseURL)
		default:
			fmt.Println("You are on the latest version.")
		}
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Also check GitHub for a newer release")
}
