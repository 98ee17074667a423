package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/client"
	"github.com/unclebandit/customer-admin/internal/config"
	"github.com/unclebandit/customer-admin/internal/logger"
	"github.com/unclebandit/customer-admin/internal/page"
	"github.com/unclebandit/customer-admin/internal/tui"
)

type options struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "console",
		Short:         "Manage customers from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a config file (default ./config.toml)")
	flags.StringVar(&opts.apiURL, "api-url", "", "customer API base URL (overrides api.base_url)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (overrides api.timeout)")
	flags.StringVar(&opts.logFile, "log-file", "console.log", "log destination while the interactive page owns the terminal")

	cmd.AddCommand(newListCmd(opts), newDeleteCmd(opts))
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the customer table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, _, err := setup(opts, false)
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), ctrl.Snapshot())
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer and print the refreshed table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid customer id %q", args[0])
			}
			ctrl, _, err := setup(opts, false)
			if err != nil {
				return err
			}
			// Delete refetches on both outcomes; the table reflects the server.
			deleteErr := ctrl.Delete(cmd.Context(), id)
			if err := printTable(cmd.OutOrStdout(), ctrl.Snapshot()); err != nil {
				return err
			}
			return deleteErr
		},
	}
}

func runInteractive(ctx context.Context, opts *options) error {
	ctrl, log, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	p := tea.NewProgram(tui.New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	ctrl.OnChange(func(s page.State) {
		// Send blocks until the program reads the message, and OnChange
		// may fire from inside Update.
		go p.Send(tui.StateChanged(s))
	})

	_, err = p.Run()
	return err
}

// setup wires config, logger, API client and page controller. In
// interactive mode a stdout log target is redirected to opts.logFile so
// log lines do not tear the screen.
func setup(opts *options, interactive bool) (*page.Controller, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.timeout > 0 {
		cfg.API.Timeout = opts.timeout
	}
	if interactive && (cfg.Log.Output == "" || cfg.Log.Output == "stdout") {
		cfg.Log.Output = opts.logFile
	}
	if !interactive && (cfg.Log.Output == "" || cfg.Log.Output == "stdout") {
		cfg.Log.Output = "stderr"
	}

	log := logger.New(cfg.Log)
	api := client.New(cfg.API.BaseURL, cfg.API.Timeout)
	return page.NewController(api, log, pageConfig(cfg.Page)), log, nil
}

func pageConfig(pc config.PageConfig) page.Config {
	c := page.DefaultConfig()
	c.ResetDraftOnOpen = pc.ResetDraftOnOpen
	c.SeverityFromOutcome = pc.SeverityFromOutcome
	if pc.SuccessNotification > 0 {
		c.SuccessNotification = pc.SuccessNotification
	}
	if pc.FailureNotification > 0 {
		c.FailureNotification = pc.FailureNotification
	}
	return c
}

func printTable(w io.Writer, s page.State) error {
	_, err := fmt.Fprintln(w, tui.RenderTable(s, -1, 0))
	return err
}
