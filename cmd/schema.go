package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the introspected database schema",
	Long:  "Prints the schema exactly as it is rendered into the generation and validation prompts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		sch, err := database.Schema(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "introspect schema")
		}

		fmt.Print(sch.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
