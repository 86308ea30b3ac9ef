package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wxterm/wxterm/internal/config"
	"github.com/wxterm/wxterm/internal/output"
	"github.com/wxterm/wxterm/internal/weather"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically fetch conditions and render the widget line",
	Long: `Watch fetches current conditions on an interval and renders an icon
and title line. A failed refresh keeps the previous conditions on
screen; the widget exits on SIGINT, SIGTERM or SIGHUP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadWatchConfig(cmd)
		if err != nil {
			return err
		}
		if errs := config.ValidateConfig(cfg); len(errs) > 0 {
			return errs[0]
		}

		client := &weather.Client{
			APIKey:    cfg.APIKey,
			Zip:       cfg.Zip,
			Units:     cfg.Units,
			BaseURL:   cfg.BaseURL,
			UserAgent: "wxterm/" + version,
		}

		noColor, _ := cmd.Flags().GetBool("no-color")
		formatter := output.NewFormatter(noColor || !output.IsTerminal())

		ctx, stop := signal.NotifyContext(cmd.Context(),
			os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		return watchLoop(ctx, cmd, client, formatter, cfg.Interval)
	},
}

// loadWatchConfig merges the config file with flag overrides; flags win.
func loadWatchConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		cfg.APIKey = key
	}
	if zip, _ := cmd.Flags().GetString("zip"); zip != "" {
		cfg.Zip = zip
	}
	if celsius, _ := cmd.Flags().GetBool("celsius"); celsius {
		cfg.Units = "metric"
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval, _ = cmd.Flags().GetDuration("interval")
	}
	if base, _ := cmd.Flags().GetString("base-url"); base != "" {
		cfg.BaseURL = base
	}
	return cfg, nil
}

// watchLoop is the widget's main loop: fetch, render, sleep, repeat. The
// previous conditions are retained across failed refreshes, the way the
// original widget kept its last icon.
func watchLoop(ctx context.Context, cmd *cobra.Command, client *weather.Client,
	formatter *output.Formatter, interval time.Duration) error {

	var last *weather.Conditions
	var lastFetch time.Time

	refresh := func() {
		cond, err := client.Current()
		if err != nil {
			// A failed cycle keeps the previous rendered state.
			if last != nil {
				io.WriteString(cmd.OutOrStdout(), formatter.FormatStale(last, time.Since(lastFetch)))
			} else {
				io.WriteString(cmd.ErrOrStderr(), formatter.FormatError(err))
			}
			return
		}
		last = cond
		lastFetch = time.Now()
		io.WriteString(cmd.OutOrStdout(), formatter.FormatConditions(cond))
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

func init() {
	watchCmd.Flags().StringP("api-key", "k", "", "openweathermap.org API key")
	watchCmd.Flags().StringP("zip", "z", "", "Zipcode to fetch conditions for")
	watchCmd.Flags().BoolP("celsius", "c", false, "Report temperatures in Celsius")
	watchCmd.Flags().DurationP("interval", "i", config.DefaultInterval, "Refresh interval (minimum 1s)")
	watchCmd.Flags().String("config", "", "Config file (default $XDG_CONFIG_HOME/wxterm/config.yaml)")
	watchCmd.Flags().String("base-url", "", "Override the API base URL")
	watchCmd.Flags().Bool("no-color", false, "Disable colored output")
}
