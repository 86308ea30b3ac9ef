package cli

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wxterm/wxterm/internal/rawhttp"
	"github.com/wxterm/wxterm/pkg/jsonpath"
	"github.com/wxterm/wxterm/pkg/jsonschema"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Fetch a URL with the raw HTTP/1.0 client and print the body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		userAgent, _ := cmd.Flags().GetString("user-agent")
		insecure, _ := cmd.Flags().GetBool("insecure")
		extract, _ := cmd.Flags().GetString("extract")
		schemaPath, _ := cmd.Flags().GetString("schema")
		verbose, _ := cmd.Flags().GetBool("verbose")

		opts := []rawhttp.Option{rawhttp.WithUserAgent(userAgent)}
		if insecure {
			opts = append(opts, rawhttp.WithTLSConfig(&tls.Config{
				MinVersion:         tls.VersionTLS10,
				InsecureSkipVerify: true,
			}))
		}

		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "GET %s\n", url)
		}

		req, err := rawhttp.Get(url, opts...)
		if err != nil {
			return err
		}
		defer req.Close()

		if err := req.SkipHeader(); err != nil {
			return err
		}

		body, err := io.ReadAll(rawhttp.NewBodyReader(req))
		if err != nil {
			return err
		}

		if schemaPath != "" {
			schema, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}
			ok, errs := jsonschema.ValidateWithErrors(string(body), string(schema))
			if !ok {
				return fmt.Errorf("schema validation failed: %s", errs.Error())
			}
			if verbose {
				fmt.Fprintln(cmd.ErrOrStderr(), "schema validation passed")
			}
		}

		if extract != "" {
			value, err := jsonpath.Extract(string(body), extract)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), string(body))
		return nil
	},
}

func init() {
	getCmd.Flags().StringP("user-agent", "A", "wxterm", "User-Agent header value")
	getCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	getCmd.Flags().StringP("extract", "e", "", "JSONPath expression to extract from the body")
	getCmd.Flags().String("schema", "", "JSON Schema file to validate the body against")
	getCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
}
