package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "wxterm",
	Short:   "A terminal weather widget with a raw HTTP/1.0 client",
	Version: version,
	Long: `Wxterm periodically fetches current conditions from openweathermap.org
and renders a matching icon and title line in the terminal. The fetch
runs over its own minimal HTTP/1.0 client (plain or TLS) rather than a
full HTTP stack; the get and bench subcommands expose that client
directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(benchCmd)
}
