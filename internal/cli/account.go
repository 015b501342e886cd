package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show remaining token quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			limits, err := apiClient.GetLimits(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch limits: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(limits)
			}

			fmt.Printf("Tier:    %s\n", limits.Tier)
			fmt.Printf("Daily:   %d / %d (%d remaining)\n",
				limits.DailyUsed, limits.DailyLimit, limits.DailyRemaining)
			fmt.Printf("Monthly: %d / %d (%d remaining)\n",
				limits.MonthlyUsed, limits.MonthlyLimit, limits.MonthlyRemaining)
			fmt.Printf("Total:   %d tokens used\n", limits.TotalUsed)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime translation statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			stats, err := apiClient.GetStats(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch stats: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(stats)
			}

			fmt.Printf("Translations: %d\n", stats.TotalTranslations)
			fmt.Printf("Tokens used:  %d\n", stats.TotalTokensUsed)
			fmt.Printf("In history:   %d\n", stats.StoredExchanges)
			return nil
		},
	}
}

func newUpgradeCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade to the premium tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := apiClient.Upgrade(ctx, months)
			if err != nil {
				return fmt.Errorf("upgrade failed: %w", err)
			}

			fmt.Printf("Upgraded to %s", user.Tier)
			if user.TierExpires != nil {
				fmt.Printf(" until %s", user.TierExpires.Format("2006-01-02"))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 1, "subscription length in months")

	return cmd
}
