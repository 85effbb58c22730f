package scorecard

import (
	"context"
	"fmt"
	"time"

	"ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"

	"github.com/spf13/cobra"
)

// NewCommand returns the "scorecard" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Show the weekly mentor scorecard",
		Long: `Show the scorecard panels of the layout. By default each scorecard shows
its latest week as metric/value rows; --history shows every week, one
row per date and one column per metric.

On a terminal the view stays open (h toggles history, r refreshes).
Otherwise the scorecard is fetched once and printed.

Examples:
  ironrod scorecard
  ironrod scorecard --history | less -R`,
		Args: cobra.NoArgs,
		RunE: runScorecard,
	}

	cmd.Flags().Bool("history", false, "show every period instead of the latest")

	return cmd
}

func isScorecard(p dashboard.PanelConfig) bool { return p.Kind == dashboard.KindScorecard }

func runScorecard(cmd *cobra.Command, args []string) error {
	history, _ := cmd.Flags().GetBool("history")

	s, err := session.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.Composer(isScorecard)
	if err != nil {
		return err
	}

	if session.Interactive(cmd.OutOrStdout()) {
		if err := c.Start(); err != nil {
			return fmt.Errorf("failed to start scorecard: %w", err)
		}
		return tui.RunDashboard(c, tui.DashboardOptions{
			Breadcrumb: "scorecard",
			Gateway:    s.GatewayLabel(),
			Currency:   s.Settings.Currency,
			History:    history,
		})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	panels, err := c.Once(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPanels("", panels, tui.PanelView{
		Width:    100,
		Currency: s.Settings.Currency,
		History:  history,
		Now:      time.Now(),
	}))

	for _, p := range panels {
		if !p.Loaded {
			return fmt.Errorf("%s: %v", p.Config.Name(), p.LastErr)
		}
	}
	return nil
}
