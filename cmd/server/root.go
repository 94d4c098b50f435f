package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	cmd := &cobra.Command{
		Use:   "vendas",
		Short: "Voice-note sales webhook",
		Long: `vendas receives voice messages, transcribes them and records the sale
spoken in them as a row in a spreadsheet.

Running without a subcommand starts the webhook server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(newExtractCommand())

	return cmd
}
