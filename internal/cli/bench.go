package cli

import (
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/wxterm/wxterm/internal/perf"
	"github.com/wxterm/wxterm/internal/rawhttp"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL",
	Short: "Measure fetch latency through the raw client",
	Long: `Bench performs repeated GET fetches of URL through the raw HTTP/1.0
client, reading each response to completion, and prints a latency
percentile summary. Each fetch opens a fresh connection; there is no
keep-alive to measure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		count, _ := cmd.Flags().GetInt("requests")
		insecure, _ := cmd.Flags().GetBool("insecure")
		userAgent, _ := cmd.Flags().GetString("user-agent")

		if count < 1 {
			return fmt.Errorf("requests must be >= 1")
		}

		opts := []rawhttp.Option{rawhttp.WithUserAgent(userAgent)}
		if insecure {
			opts = append(opts, rawhttp.WithTLSConfig(&tls.Config{
				MinVersion:         tls.VersionTLS10,
				InsecureSkipVerify: true,
			}))
		}

		recorder := perf.NewRecorder()
		for i := 0; i < count; i++ {
			if err := benchOnce(url, opts, recorder); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "request %d: %v\n", i+1, err)
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), recorder.Summarize().String())
		return nil
	},
}

// benchOnce runs one full fetch and records its latency, or the failure.
func benchOnce(url string, opts []rawhttp.Option, recorder *perf.Recorder) error {
	start := time.Now()

	req, err := rawhttp.Get(url, opts...)
	if err != nil {
		recorder.RecordFailure()
		return err
	}
	defer req.Close()

	if err := req.SkipHeader(); err != nil {
		recorder.RecordFailure()
		return err
	}
	if _, err := io.Copy(io.Discard, rawhttp.NewBodyReader(req)); err != nil {
		recorder.RecordFailure()
		return err
	}

	recorder.Record(time.Since(start))
	return nil
}

func init() {
	benchCmd.Flags().IntP("requests", "n", 10, "Number of fetches to perform")
	benchCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	benchCmd.Flags().StringP("user-agent", "A", "wxterm", "User-Agent header value")
}
