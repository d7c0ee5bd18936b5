package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selgrab/selgrab"
)

func newContextCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the selection plus surrounding document context",
		Long: `Captures the current selection and then tries, best effort, to surround
it with a window of the enclosing document text.

Context retrieval may legitimately fail (the application exposes no
accessible text and select-all captures a different scope); the selection
alone is still printed in that case.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runContext(v) },
	}

	f := cmd.Flags()
	f.Bool("cancel-select", false, "collapse the visual selection after capturing")
	f.Int("before", 150, "context bytes before the selection")
	f.Int("after", 150, "context bytes after the selection")
	f.Duration("timeout", 5*time.Second, "budget for clipboard-mutating sequences")
	f.StringSlice("web-roles", nil, "accessibility roles treated as web content (macOS)")
	f.Bool("json", false, "output JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runContext(v *viper.Viper) error {
	setupLogging(v)
	applyOptions(v)

	sel, err := selgrab.GetSelectedTextWithContext(v.GetBool("cancel-select"))
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		out := struct {
			Text    string `json:"text"`
			Context string `json:"context,omitempty"`
		}{sel.Text, sel.Context}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return nil
	}
	fmt.Println(sel.Text)
	if sel.HasContext {
		fmt.Println("---")
		fmt.Println(sel.Context)
	}
	return nil
}
