package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/session"
)

func designCmd() *cobra.Command {
	var goal string

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Request a workflow design for a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := client.Design(cmd.Context(), goal)
			if err != nil {
				return fmt.Errorf("design: %s", api.Message(err))
			}
			printDesign(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "workflow goal in natural language")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

// errRunFailed marks a FAIL verdict. It propagates out of Execute like any
// other error so deferred cleanup and cobra hooks still run; main maps it
// to exit code 1.
var errRunFailed = errors.New("test run failed")

func runCmd() *cobra.Command {
	var (
		goal         string
		useN8N       bool
		connectionID string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Design a workflow and execute its test",
		Long: `Design a workflow for the goal and immediately execute its test.
Exit code 0 when the run passes, 1 when it fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := session.ModeMock
			if useN8N {
				mode = session.ModeReal
				if connectionID == "" {
					connectionID = cfg.Run.ConnectionID
				}
			}

			sess, err := designAndRun(cmd.Context(), goal, mode, connectionID)
			if err != nil {
				return err
			}

			snap := sess.Snapshot()
			display := session.Present(snap)
			if err := renderRun(cmd.OutOrStdout(), resolveFormat(format), snap, display); err != nil {
				return err
			}
			if display.StatusLabel != api.StatusPass {
				return errRunFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "workflow goal in natural language")
	cmd.Flags().BoolVar(&useN8N, "n8n", false, "execute against a real n8n instance")
	cmd.Flags().StringVar(&connectionID, "connection-id", "", "saved n8n connection id (with --n8n)")
	cmd.Flags().StringVar(&format, "format", "auto", "output format: auto, table, llm, json")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

// designAndRun drives the session machine synchronously: the same event
// sequence the TUI produces, with the derived fetches fanned out in
// parallel. Derived-fetch errors stay silent; the views just come back
// absent.
func designAndRun(ctx context.Context, goal string, mode session.Mode, connectionID string) (*session.Session, error) {
	sess := session.New()

	sess.StartDesign(goal)
	resp, err := client.Design(ctx, goal)
	sess.FinishDesign(resp, err)
	if err != nil {
		return nil, fmt.Errorf("design: %s", api.Message(err))
	}

	snap := sess.Snapshot()
	if !sess.StartRun(mode, connectionID) {
		return nil, fmt.Errorf("run: no workflow contract")
	}
	run, err := client.TestRun(ctx, snap.Contract.ID, mode == session.ModeReal, connectionID)
	sess.FinishRun(run, err)
	if err != nil {
		return nil, fmt.Errorf("run: %s", api.Message(err))
	}
	logger.Info().Str("run_id", run.ID).Str("status", run.Status).Msg("run finished")

	var (
		artifacts    []api.Artifact
		graph        *api.WorkflowGraph
		artErr, gErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		artifacts, artErr = client.Artifacts(gctx, run.ID)
		return nil
	})
	g.Go(func() error {
		graph, gErr = client.WorkflowGraph(gctx, run.ID)
		return nil
	})
	_ = g.Wait()
	if artErr != nil {
		logger.Debug().Err(artErr).Msg("artifact fetch failed")
	}
	if gErr != nil {
		logger.Debug().Err(gErr).Msg("graph fetch failed")
	}
	sess.ResolveArtifacts(run.ID, artifacts, artErr)
	sess.ResolveGraph(run.ID, graph, gErr)

	return sess, nil
}

// resolveFormat applies the auto rule: a TTY gets the styled table, a pipe
// gets terse text.
func resolveFormat(format string) string {
	if format != "auto" {
		return format
	}
	if isTTY(os.Stdout) {
		return "table"
	}
	return "llm"
}
