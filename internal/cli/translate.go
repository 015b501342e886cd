package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/voxlate/voxlate/pkg/client"
)

func newTranslateCmd() *cobra.Command {
	var selectLang string

	cmd := &cobra.Command{
		Use:   "translate <audio-file>",
		Short: "Translate a recorded voice message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if selectLang != "" {
				if _, err := apiClient.SelectLanguage(ctx, selectLang); err != nil {
					return fmt.Errorf("failed to select language: %w", err)
				}
			}

			result, err := apiClient.TranslateFile(ctx, args[0])
			if err != nil {
				if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsSelectionRequired() {
					fmt.Println("The server needs to know which language you spoke.")
					fmt.Println("Re-run with --language <code>, or arm the session first:")
					fmt.Println("  voxlate session select <code>")
					return err
				}
				return fmt.Errorf("translation failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("Heard (%s):      %s\n", result.SourceLanguage, result.OriginalText)
			fmt.Printf("Translated (%s): %s\n", result.TargetLanguage, result.TranslatedText)
			if result.BackTranslation != "" {
				fmt.Printf("Back check:      %s\n", result.BackTranslation)
			}
			if result.LowConfidence {
				fmt.Println("Note: language detection was uncertain; the result may be off.")
			}
			fmt.Printf("Tokens used:     %d\n", result.TokensUsed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&selectLang, "language", "l", "", "dictation language code (arms the session before translating)")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show translation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := apiClient.History(ctx, page, pageSize)
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			if len(result.Data) == 0 {
				fmt.Println("No translations yet")
				return nil
			}

			table := NewTable("WHEN", "FROM", "TO", "ORIGINAL", "TRANSLATED", "TOKENS")
			for _, e := range result.Data {
				table.AddRow(
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.SourceLanguage,
					e.TargetLanguage,
					truncate(e.OriginalText, 32),
					truncate(e.TranslatedText, 32),
					strconv.FormatInt(e.TokensUsed, 10),
				)
			}
			table.Render()

			fmt.Printf("\nPage %d of %d (%d total)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	return cmd
}

func newSynthesizeCmd() *cobra.Command {
	var language, outFile string

	cmd := &cobra.Command{
		Use:   "synthesize <text>",
		Short: "Convert text to speech",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			audio, err := apiClient.Synthesize(ctx, args[0], language)
			if err != nil {
				return fmt.Errorf("synthesis failed: %w", err)
			}

			if err := os.WriteFile(outFile, audio, 0644); err != nil {
				return fmt.Errorf("failed to write audio file: %w", err)
			}

			fmt.Printf("Wrote %d bytes to %s\n", len(audio), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "en", "language code of the text")
	cmd.Flags().StringVarP(&outFile, "out", "f", "speech.mp3", "output file")

	return cmd
}
