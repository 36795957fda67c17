package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change stored settings",
	Long: "Show or change stored settings. Keys: " + strings.Join(settings.Keys(), ", ") + ".",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		prefs := settings.Load(cmd.Context(), e.store.KV())
		for _, k := range settings.Keys() {
			v, _ := prefs.Get(k)
			fmt.Printf("%-14s  %s\n", k, v)
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		v, err := settings.Load(cmd.Context(), e.store.KV()).Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		prefs := settings.Load(cmd.Context(), e.store.KV())
		if err := prefs.Set(cmd.Context(), e.store.KV(), args[0], args[1]); err != nil {
			return err
		}
		v, _ := prefs.Get(args[0])
		fmt.Printf("%s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
