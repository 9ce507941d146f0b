package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Print every stored record grouped by type.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/v1/records", nil)
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the activity log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/v1/logs/list", nil)
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Print the transaction history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/v1/transactions/list", nil)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print record counts and chain totals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/v1/dashboard", nil)
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd, logsCmd, transactionsCmd, dashboardCmd)
}
