package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/voxlate/voxlate/pkg/client"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the voice session",
	}

	cmd.AddCommand(newSessionStatusCmd())
	cmd.AddCommand(newSessionSelectCmd())
	cmd.AddCommand(newSessionClearCmd())

	return cmd
}

func newSessionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current voice session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := apiClient.GetSession(ctx)
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(session)
			}

			printSession(session)
			return nil
		},
	}
}

func newSessionSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <language-code>",
		Short: "Arm the session with the language of your next recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := apiClient.SelectLanguage(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to select language: %w", err)
			}

			fmt.Printf("Session armed: %s\n", session.SelectedLanguage)
			if session.ExpiresAt != nil {
				fmt.Printf("Expires in %s\n", time.Until(*session.ExpiresAt).Round(time.Second))
			}
			return nil
		},
	}
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the voice session to idle",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := apiClient.ClearSession(ctx); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Session cleared")
			return nil
		},
	}
}

func printSession(s *client.Session) {
	fmt.Printf("State:    %s\n", s.State)
	if s.SelectedLanguage != "" {
		fmt.Printf("Language: %s\n", s.SelectedLanguage)
	}
	if s.ExpiresAt != nil {
		remaining := time.Until(*s.ExpiresAt).Round(time.Second)
		if remaining > 0 {
			fmt.Printf("Expires:  in %s\n", remaining)
		} else {
			fmt.Println("Expires:  expired")
		}
	}
}
