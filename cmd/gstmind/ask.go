package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gstmind/gstmind/internal/cli"
	"github.com/gstmind/gstmind/internal/orchestrator"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and exit",
		Long: `Route one free-text question to the matching backend and print
the classified intent and the response.

Examples:
  gstmind ask "what is the gst rate for books"
  gstmind ask "show invoice 205"
  gstmind ask "calculate 18% gst on invoice 101"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := strings.Join(args, " ")

	o, cleanup, err := buildOrchestrator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	route := orchestrator.ClassifyQuery(question)
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("[%s]", route)))

	resp := o.Run(ctx, question)
	fmt.Println(cli.FormatResponse(resp))
	return nil
}
