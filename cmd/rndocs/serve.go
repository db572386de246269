package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gnana997/rndocs/pkg/httpapi"
	"github.com/gnana997/rndocs/pkg/mcp"
	"github.com/gnana997/rndocs/pkg/mcplog"
	"github.com/gnana997/rndocs/pkg/service"
)

func newServeCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog to AI agents over MCP (stdio)",
		Long: `Serve the catalog to AI agents over MCP on stdin/stdout.

Logs go to stderr. With --log (or mcp_log in the config file) every tool call
is appended to a JSONL file; summarize it with "rndocs mcp-stats".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qs, err := rt.queryService()
			if err != nil {
				return err
			}
			cache, err := rt.propCache()
			if err != nil {
				return err
			}

			var callLog *mcplog.Logger
			if rt.cfg.MCPLog != "" {
				callLog, err = mcplog.NewLogger(rt.cfg.MCPLog)
				if err != nil {
					return fmt.Errorf("failed to open MCP call log: %w", err)
				}
				defer callLog.Close()
				rt.logger.Info("logging MCP tool calls", "path", rt.cfg.MCPLog)
			}

			return mcp.NewServer(qs, cache, callLog).WithLogger(rt.logger).ServeStdio()
		},
	}

	cmd.Flags().String("log", "", "append every tool call to this JSONL file")
	return cmd
}

func newHTTPCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the catalog as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qs, err := rt.queryService()
			if err != nil {
				return err
			}
			cache, err := rt.propCache()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(httpapi.Config{
				Service: service.New(qs, cache),
				Port:    rt.cfg.HTTPPort,
				Logger:  rt.logger,
			})
			if err := srv.Serve(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			rt.logger.Info("http server stopped")
			return nil
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "port to listen on")
	return cmd
}

func newStatsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-stats [log-file]",
		Short: "Summarize an MCP tool call log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rt.cfg.MCPLog
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no log file given and mcp_log is not configured")
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open log: %w", err)
			}
			defer f.Close()

			entries, err := mcplog.ReadEntries(f)
			if err != nil {
				return err
			}
			printStats(cmd, mcplog.Summarize(entries))
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, stats []mcplog.ToolStats) {
	w := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(w, "No tool calls recorded.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tool", "Calls", "Errors", "Avg ms", "Max ms", "Bytes"})
	var calls, errs int
	for _, s := range stats {
		t.AppendRow(table.Row{s.Tool, s.Calls, s.Errors, fmt.Sprintf("%.1f", s.AvgMs()), s.MaxMs, s.ResponseBytes})
		calls += s.Calls
		errs += s.Errors
	}
	t.AppendFooter(table.Row{"Total", calls, errs, "", "", ""})
	t.Render()
}
