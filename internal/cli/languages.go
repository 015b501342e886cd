package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Manage your translation language pair",
	}

	cmd.AddCommand(newLanguagesListCmd())
	cmd.AddCommand(newLanguagesSetCmd())
	cmd.AddCommand(newLanguagesSwapCmd())

	return cmd
}

func newLanguagesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported languages and your current pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			catalog, err := apiClient.Languages(ctx)
			if err != nil {
				return fmt.Errorf("failed to list languages: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(catalog)
			}

			table := NewTable("CODE", "LANGUAGE", "FLAG")
			for _, l := range catalog.Supported {
				table.AddRow(l.Code, l.Name, l.Flag)
			}
			table.Render()

			fmt.Printf("\nYour pair: %s <-> %s\n",
				formatLanguage(catalog.Pair.Primary),
				formatLanguage(catalog.Pair.Secondary))
			return nil
		},
	}
}

func newLanguagesSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <primary> <secondary>",
		Short: "Set your language pair (e.g. 'voxlate languages set uk en')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pair, err := apiClient.SetLanguages(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to set languages: %w", err)
			}

			fmt.Printf("Language pair set: %s <-> %s\n",
				formatLanguage(pair.Primary), formatLanguage(pair.Secondary))
			return nil
		},
	}
}

func newLanguagesSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap",
		Short: "Swap primary and secondary languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pair, err := apiClient.SwapLanguages(ctx)
			if err != nil {
				return fmt.Errorf("failed to swap languages: %w", err)
			}

			fmt.Printf("Language pair swapped: %s <-> %s\n",
				formatLanguage(pair.Primary), formatLanguage(pair.Secondary))
			return nil
		},
	}
}
