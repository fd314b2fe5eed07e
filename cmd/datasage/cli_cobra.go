package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func executeCLI() error {
	root := buildRootCommand(true)
	if err := root.Execute(); err != nil {
		return err
	}
	return nil
}

func buildRootCommand(includeDocsCommand bool) *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   "datasage",
		Short: "Conversational assistant for exploratory data analysis with session memory",
		Long: strings.TrimSpace(`datasage is a conversational EDA assistant.

It routes natural-language questions about a dataset to an analysis service,
remembers what each session discovered, and synthesizes consolidated
conclusions from the accumulated findings.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			_ = cmd.Help()
			return fmt.Errorf("a subcommand is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show build/version metadata")

	root.AddCommand(newOnboardCommand())
	root.AddCommand(newChatCommand())
	root.AddCommand(newStatusCommand())
	root.AddCommand(newVersionCommand())

	if includeDocsCommand {
		docsCmd := newDocsCommand(func() *cobra.Command { return buildRootCommand(false) })
		root.AddCommand(docsCmd)
	}

	return root
}

func newOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "onboard",
		Short:   "Initialize ~/.datasage config and workspace",
		Long:    "Create default configuration and the workspace directory for a new datasage installation.",
		Example: "  datasage onboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			onboard()
			return nil
		},
	}
}

func newChatCommand() *cobra.Command {
	var (
		message string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat about your dataset (interactive or one-shot)",
		Long:  "Run an interactive analysis session or send a single question to the analysis service.",
		Example: strings.Join([]string{
			"  datasage chat",
			"  datasage chat --message \"Existe correlação entre idade e renda?\"",
			"  datasage chat -m \"Quais são as conclusões?\" --debug",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatCmd(message, debug)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "One-shot question to send")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Show configuration and runtime readiness",
		Example: "  datasage status",
		RunE: func(cmd *cobra.Command, args []string) error {
			statusCmd()
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show build/version metadata",
		Example: "  datasage version",
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion()
			return nil
		},
	}
}
