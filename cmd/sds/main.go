// cmd/sds/main.go
//
// Entry point for the sds CLI. The bare command launches the scoping TUI
// in the current directory; `sds report` prints (or copies) the composed
// SDS document from the saved snapshot without opening the UI.

package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/samedayscope/sds/internal/config"
	"github.com/samedayscope/sds/internal/project"
	"github.com/samedayscope/sds/internal/report"
	"github.com/samedayscope/sds/internal/tui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sds",
		Short:         "Same Day Scope · room-by-room job scoping for pack-out crews",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
	root.AddCommand(newReportCmd(), newVersionCmd())
	return root
}

func runTUI() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if err := config.InitScopeDir(cwd); err != nil {
		return fmt.Errorf("initialize %s directory: %w", config.ScopeDir, err)
	}
	app, err := tui.NewApp(cwd)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	var copyToClipboard bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the composed SDS document from the saved project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			cfg, err := config.NewConfig(cwd)
			if err != nil {
				return err
			}
			snap, err := project.NewStore(cfg.SnapshotPath()).Load()
			if err != nil {
				return err
			}
			doc := report.Compose(report.InputFromState(snap.State))
			text := doc.Text()
			if copyToClipboard {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copy report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Report copied to clipboard")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "copy the report to the system clipboard")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sds version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sds "+version)
		},
	}
}
