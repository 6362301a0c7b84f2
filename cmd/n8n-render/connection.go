package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/session"
)

func connectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connection",
		Short: "Manage the n8n connection",
	}
	cmd.AddCommand(connectionSaveCmd())
	return cmd
}

func connectionSaveCmd() *cobra.Command {
	var (
		baseURL  string
		apiKey   string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save an n8n credential on the backend",
		Long: `Save an n8n credential on the backend. The api key is transmitted once
and never stored or echoed by this client. Without --remember the backend
keeps it for the current session only; with it, encrypted at rest.
Rotating a credential is just another save, which yields a new id.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := session.New()
			sess.StartConnectionSave()
			ref, err := client.SaveConnection(cmd.Context(), api.ConnectionInput{
				BaseURL:  baseURL,
				APIKey:   apiKey,
				Remember: remember,
			})
			sess.FinishConnectionSave(ref, err)
			if err != nil {
				return fmt.Errorf("connection save: %s", api.Message(err))
			}

			snap := sess.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "connection %s (%s)\n", ref.ID, snap.Connection.Label())
			if !ref.Persisted {
				fmt.Fprintln(cmd.OutOrStdout(), "note: session-scoped; the backend forgets it on restart")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "n8n instance base URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "n8n API key")
	cmd.Flags().BoolVar(&remember, "remember", false, "store encrypted on the server")
	_ = cmd.MarkFlagRequired("base-url")
	_ = cmd.MarkFlagRequired("api-key")
	return cmd
}
