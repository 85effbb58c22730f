package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"

	"github.com/charmbracelet/huh/spinner"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

// textWidth is the card width used for text output.
const textWidth = 100

// NewCommand returns the "snapshot" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch every panel once and print it",
		Long: `Fetch every panel in the layout once, concurrently, and print the
result. Text output draws the same charts and tables as the dashboard;
JSON output carries the normalized points and the latest scorecard period.

Fails only when no panel could be fetched.

Examples:
  ironrod snapshot
  ironrod snapshot -o json | jq '.[0].points'`,
		Args: cobra.NoArgs,
		RunE: runSnapshot,
	}

	cmd.Flags().StringP("output", "o", "text", "output format: text or json")

	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	output = strings.ToLower(strings.TrimSpace(output))
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q (valid: text, json)", output)
	}

	s, err := session.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.Composer(nil)
	if err != nil {
		return err
	}

	panels, err := fetchAll(cmd, c)
	if err != nil {
		return err
	}

	if output == "json" {
		err = writeJSON(cmd.OutOrStdout(), panels)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPanels(s.Layout.Title, panels, tui.PanelView{
			Width:    textWidth,
			Currency: s.Settings.Currency,
			Now:      time.Now(),
		}))
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, p := range panels {
		if !p.Loaded {
			failed++
		}
	}
	if failed == len(panels) {
		return fmt.Errorf("all %d panels failed to load", failed)
	}
	return nil
}

// fetchAll runs Composer.Once, behind a spinner on a terminal.
func fetchAll(cmd *cobra.Command, c *dashboard.Composer) ([]dashboard.Panel, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !session.Interactive(cmd.ErrOrStderr()) {
		return c.Once(ctx)
	}

	var (
		panels   []dashboard.Panel
		fetchErr error
	)
	spinErr := spinner.New().
		Title(fmt.Sprintf("Fetching %d panels...", len(c.Layout().Panels))).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(cmd.ErrOrStderr()).
		Action(func() {
			panels, fetchErr = c.Once(ctx)
		}).
		Run()
	if spinErr != nil {
		return nil, spinErr
	}
	return panels, fetchErr
}

func writeJSON(w io.Writer, panels []dashboard.Panel) error {
	reports := make([]dashboard.PanelReport, len(panels))
	for i, p := range panels {
		reports[i] = p.Report()
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
