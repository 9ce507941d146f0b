// Package cmd contains the ledger command line client.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var url string

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the ledger service.")
}

var rootCmd = &cobra.Command{
	Use:          "ledger-cli",
	Short:        "Work with the Ormond Hospitals record ledger",
	SilenceUsage: true,
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

var client = http.Client{Timeout: time.Minute}

// call sends the request to the ledger service and writes the indented JSON
// response to the command output. Any status of 400 or above is an error.
func call(cmd *cobra.Command, method string, path string, body any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		r = bytes.NewReader(data)
	}

	endpoint := strings.TrimSuffix(url, "/") + path

	req, err := http.NewRequestWithContext(cmd.Context(), method, endpoint, r)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		out.Reset()
		out.Write(data)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.String())

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: status %d", method, endpoint, resp.StatusCode)
	}

	return nil
}
