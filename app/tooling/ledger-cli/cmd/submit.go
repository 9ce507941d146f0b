package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var entry struct {
	EntityType string `json:"entity_type"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	Extra1     string `json:"extra1"`
	Extra2     string `json:"extra2"`
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a patient, doctor, insurance or pharmacy record.",
	Long: `Submit a record. The meaning of name, extra1 and extra2 depends on the type:

  patient    name, diagnosis, doctor
  doctor     name, specialty
  insurance  patient id, provider, amount
  pharmacy   pharmacy name, medicine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, http.MethodPost, "/v1/records", entry)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&entry.EntityType, "type", "t", "", "Entity type: patient, doctor, insurance or pharmacy.")
	submitCmd.Flags().StringVarP(&entry.ID, "id", "i", "", "Unique id of the record within its type.")
	submitCmd.Flags().StringVarP(&entry.Name, "name", "n", "", "Name of the entity.")
	submitCmd.Flags().StringVar(&entry.Extra1, "extra1", "", "First type specific field.")
	submitCmd.Flags().StringVar(&entry.Extra2, "extra2", "", "Second type specific field.")
	submitCmd.MarkFlagRequired("type")
	submitCmd.MarkFlagRequired("id")
}
