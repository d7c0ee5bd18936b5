package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selgrab/selgrab"
)

func newGrabCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "grab",
		Short: "Print the focused application's selected text",
		Long: `Captures whatever text is currently selected in the application holding
input focus and prints it to stdout.

The capture prefers the platform accessibility API and falls back to a
clipboard round trip; your clipboard is restored afterwards either way. An
empty result means nothing was selected.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runGrab(v) },
	}

	f := cmd.Flags()
	f.Bool("cancel-select", false, "collapse the visual selection after capturing")
	f.Duration("timeout", 5*time.Second, "budget for clipboard-mutating sequences")
	f.Bool("json", false, "output JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runGrab(v *viper.Viper) error {
	setupLogging(v)
	applyOptions(v)

	text, err := selgrab.GetSelectedText(v.GetBool("cancel-select"))
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		enc, _ := json.Marshal(map[string]string{"text": text})
		fmt.Println(string(enc))
		return nil
	}
	fmt.Println(text)
	return nil
}
