package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selgrab/selgrab/internal/clip"
)

func newDoctorCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check clipboard and input-control prerequisites",
		Long: `Verifies that the clipboard backend initialises and that the process is
allowed to observe and control input, which the capture strategies need.

On macOS, pass --prompt to bring up the system accessibility permission
dialog when access is missing.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDoctor(v) },
	}

	f := cmd.Flags()
	f.Bool("prompt", false, "show the system permission dialog when access is missing (macOS)")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDoctor(v *viper.Viper) error {
	setupLogging(v)

	healthy := true
	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)

	if _, err := clip.System(); err != nil {
		fmt.Fprintf(w, "Clipboard:\tunavailable (%v)\n", err)
		healthy = false
	} else {
		fmt.Fprintf(w, "Clipboard:\tok\n")
	}

	status, ok := permissionStatus(v.GetBool("prompt"))
	fmt.Fprintf(w, "Input control:\t%s\n", status)
	healthy = healthy && ok

	_ = w.Flush()

	if !healthy {
		return errors.New("not all prerequisites are met")
	}
	return nil
}
