package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vendas/internal/extract"
)

func newExtractCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "extract <transcript>",
		Short: "Run the sale extractor on a transcript",
		Long: `Run the sale extractor on a transcript and print the fields it finds.

Useful for checking how a phrase will be parsed without sending audio.`,
		Example: `  vendas extract "Maria comprou uma bicicleta por duzentos reais"
  vendas extract --locale en "John bought a bike for fifty dollars"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor, err := extract.New(locale)
			if err != nil {
				return err
			}

			fields, ok := extractor.Extract(strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("no sale found in transcript (locale %s)", locale)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "buyer:   %s\n", fields.Buyer)
			fmt.Fprintf(out, "product: %s\n", fields.Product)
			fmt.Fprintf(out, "price:   %s\n", fields.Price)
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "pt",
		fmt.Sprintf("extraction rule to apply (%s)", strings.Join(extract.Locales(), ", ")))

	return cmd
}
