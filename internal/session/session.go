// Package session assembles what every dashboard command needs from its
// flags and the stored configuration: settings, layout, logger and a
// gateway client.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"ironrod/dash/internal/config"
	"ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/datasource"
	"ironrod/dash/internal/services/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Persistent flag names registered by the root command.
const (
	FlagBaseURL  = "base-url"
	FlagTimeout  = "timeout"
	FlagLayout   = "layout"
	FlagLogFile  = "log-file"
	FlagLogLevel = "log-level"
	FlagGateway  = "gateway"
)

// OpenStore returns the token store. Tests replace it with a MockStore.
var OpenStore = auth.DefaultStore

// Session is the resolved runtime for one command invocation.
type Session struct {
	Settings config.Settings
	Layout   dashboard.Layout
	Logger   *slog.Logger
	Client   *datasource.Client

	logFile io.Closer
}

// AddFlags registers the shared persistent flags on root.
func AddFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.String(FlagBaseURL, "", "API gateway base URL (overrides config api-base-url)")
	f.Duration(FlagTimeout, 0, "bounded wait per fetch, e.g. 3s (overrides config fetch-timeout)")
	f.String(FlagLayout, "", "YAML dashboard layout file (overrides config layout-file)")
	f.String(FlagLogFile, "", "write logs to this file (default: logs are discarded)")
	f.String(FlagLogLevel, "info", "log level: debug, info, warn, error")
	f.String(FlagGateway, auth.DefaultGateway, "name of the stored gateway token to use")
}

// FromCommand loads the config file, applies flag overrides, opens the
// log file and reads the gateway token. Close must be called when done.
func FromCommand(cmd *cobra.Command) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	timeout, _ := cmd.Flags().GetDuration(FlagTimeout)
	settings, err := cfg.Resolve(config.Overrides{
		APIBaseURL:   stringFlag(cmd, FlagBaseURL),
		FetchTimeout: timeout,
		LayoutFile:   stringFlag(cmd, FlagLayout),
	})
	if err != nil {
		return nil, err
	}

	layout, err := dashboard.LoadLayout(settings.LayoutFile)
	if err != nil {
		return nil, err
	}

	s := &Session{Settings: settings, Layout: layout}
	if err := s.openLog(stringFlag(cmd, FlagLogFile), stringFlag(cmd, FlagLogLevel)); err != nil {
		return nil, err
	}

	var opts []datasource.Option
	gateway := stringFlag(cmd, FlagGateway)
	token, err := auth.Lookup(OpenStore(), gateway)
	switch {
	case err != nil:
		s.Logger.Warn("gateway token unavailable, continuing without auth", "gateway", auth.NormalizeGateway(gateway), "error", err)
	case token != "":
		opts = append(opts, datasource.WithBearerToken(token))
	}
	s.Client = datasource.New(opts...)

	s.Logger.Debug("session ready",
		"base_url", settings.APIBaseURL,
		"timeout", settings.FetchTimeout,
		"layout", layoutName(settings.LayoutFile),
		"panels", len(layout.Panels),
		"auth", token != "",
	)
	return s, nil
}

func (s *Session) openLog(path, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); level != "" && err != nil {
		return fmt.Errorf("invalid --%s %q: %w", FlagLogLevel, level, err)
	}

	if path == "" {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.logFile = f
	s.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return nil
}

// Composer builds a composer over the panels of the layout that keep
// selects. A nil keep uses every panel.
func (s *Session) Composer(keep func(dashboard.PanelConfig) bool) (*dashboard.Composer, error) {
	layout := s.Layout
	if keep != nil {
		layout = layout.Filter(keep)
	}
	if len(layout.Panels) == 0 {
		return nil, fmt.Errorf("layout %s has no matching panels", layoutName(s.Settings.LayoutFile))
	}
	return dashboard.New(layout, s.Client, dashboard.Options{
		BaseURL: s.Settings.APIBaseURL,
		Timeout: s.Settings.FetchTimeout,
		Logger:  s.Logger,
	})
}

// GatewayLabel shortens the base URL to its host for headers.
func (s *Session) GatewayLabel() string {
	u, err := url.Parse(s.Settings.APIBaseURL)
	if err != nil || u.Host == "" {
		return s.Settings.APIBaseURL
	}
	return u.Host
}

// Close releases the log file, if one was opened.
func (s *Session) Close() error {
	if s.logFile == nil {
		return nil
	}
	return s.logFile.Close()
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(v)
}

func layoutName(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

// Interactive reports whether stream (e.g. cmd.OutOrStdout()) is a terminal.
// Buffers and pipes set by tests or redirection are not.
func Interactive(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
