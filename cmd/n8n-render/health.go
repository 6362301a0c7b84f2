package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the backend liveness endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable: %s", api.Message(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", cfg.Server.BaseURL, msg)
			return nil
		},
	}
}
