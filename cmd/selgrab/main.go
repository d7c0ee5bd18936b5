// selgrab: selected-text capture from the focused application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "selgrab",
		Short: "Capture the focused application's selected text",
		Long: `selgrab captures the text currently selected in whatever application
has input focus, plus an optional window of surrounding document context,
without cooperation from that application.

Use "selgrab grab" for the bare selection, "selgrab context" to include
surrounding document text, and "selgrab doctor" to verify OS prerequisites
(clipboard backend, accessibility permission).

Config file search order (first found wins):
  /etc/selgrab/selgrab.toml
  $HOME/.config/selgrab/selgrab.toml
  path supplied via --config

All flags can be set via SELGRAB_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newGrabCmd(),
		newContextCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("selgrab %s\n", Version)
		},
	}
}
