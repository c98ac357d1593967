package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newConnectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Manage live connections",
	}

	cmd.AddCommand(newConnectionsListCmd())
	cmd.AddCommand(newConnectionsPurgeCmd())

	return cmd
}

func newConnectionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live connection IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Connections

			if err := client.Get("/api/v1/connections", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newConnectionsPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <connection-id> [connection-id...]",
		Short: "Delete sessions for dead connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one connection id is required")
			}

			body := map[string]any{"connection_ids": args}
			var result PurgeResult

			if err := client.Post("/api/v1/connections/purge", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
