package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gstmind/gstmind/internal/cli"
	"github.com/gstmind/gstmind/internal/config"
	"github.com/gstmind/gstmind/internal/kb"
	"github.com/gstmind/gstmind/internal/retriever"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <rules-file>",
		Short: "Build the rule knowledge base",
		Long: `Split a rules text file into passages on blank lines, embed each
passage, and write the knowledge base file the semantic retriever uses.`,
		Args: cobra.ExactArgs(1),
		RunE: runIndex,
	}

	cmd.Flags().String("out", "", "knowledge base output path (default: configured knowledge_base.path)")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = config.ExpandPath(viper.GetString("knowledge_base.path"))
	}

	embedder := retriever.NewHashingEmbedder(0)
	chunks := kb.Build(embedder, string(source))
	if len(chunks) == 0 {
		return fmt.Errorf("no rule passages found in %s", args[0])
	}

	if err := kb.Save(outPath, chunks); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Indexed %d rule passages into %s", len(chunks), outPath)))
	return nil
}
