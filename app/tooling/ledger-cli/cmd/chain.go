package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	blockID    uint64
	tamperID   uint64
	tamperData string
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks in the chain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if blockID != 0 {
			return call(cmd, http.MethodGet, fmt.Sprintf("/v1/blocks/list/%d", blockID), nil)
		}
		return call(cmd, http.MethodGet, "/v1/blocks/list", nil)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the chain and print the result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodGet, "/v1/chain/verify", nil)
	},
}

var tamperCmd = &cobra.Command{
	Use:   "tamper",
	Short: "Show what verification reports when a block's data is changed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := struct {
			ID   uint64 `json:"id"`
			Data string `json:"data"`
		}{
			ID:   tamperID,
			Data: tamperData,
		}
		return call(cmd, http.MethodPost, "/v1/chain/tamper", body)
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd, verifyCmd, tamperCmd)
	blocksCmd.Flags().Uint64VarP(&blockID, "block", "b", 0, "Print only the block with this id.")
	tamperCmd.Flags().Uint64VarP(&tamperID, "block", "b", 0, "Id of the block to tamper with.")
	tamperCmd.Flags().StringVarP(&tamperData, "data", "d", "", "Replacement data for the block.")
	tamperCmd.MarkFlagRequired("block")
}
