package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gstmind/gstmind/internal/cli"
	"github.com/gstmind/gstmind/internal/orchestrator"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive question-answer session",
		Long: `Start a read-eval loop over the invoice store and the rule
knowledge base. Type 'exit' or 'quit' (or press Ctrl-C) to leave.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context())

	o, cleanup, err := buildOrchestrator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println(cli.FormatTitle("GST Intelligence"))
	fmt.Println(cli.SubtleStyle.Render("Ask about GST rules, invoice data, or calculations."))
	fmt.Println(cli.SubtleStyle.Render("Type 'exit' to quit."))
	fmt.Println()

	reader := cli.NewReader(os.Stdin)
	for {
		fmt.Print(cli.FormatPrompt("you"))

		line, err := reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			fmt.Println(cli.FormatInfo("Goodbye!"))
			return nil
		}

		route := orchestrator.ClassifyQuery(line)
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("[%s]", route)))
		fmt.Println(cli.FormatResponse(o.Run(ctx, line)))
		fmt.Println()
	}
}
