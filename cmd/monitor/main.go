package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notes-reviewer",
		Short:         "Watch a Drive folder, grade new notes with an LLM and email the verdict",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	run := newRunCmd()
	root.RunE = run.RunE
	root.AddCommand(run, newOnceCmd(), newStateCmd())
	return root
}
