package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/paylinq/askhr/internal/model"
)

var (
	askFile string
	askTier string
	askName string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question from the command line",
	Long:  "Runs the full pipeline for a single question, bypassing the HTTP surface and the credential token.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := ""
		if len(args) > 0 {
			question = args[0]
		}

		tier := model.AccessTier(askTier)
		if !tier.Valid() {
			return eris.Errorf("unknown tier %q (want %s or %s)", askTier, model.TierRestricted, model.TierElevated)
		}

		environment, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer environment.Close()

		answer := environment.Pipeline.Run(cmd.Context(), model.Request{
			Question: question,
			FilePath: askFile,
			Tier:     tier,
			UserName: askName,
		})

		fmt.Println(answer)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askFile, "file", "", "path to an optional document")
	askCmd.Flags().StringVar(&askTier, "tier", string(model.TierElevated), "access tier (restricted or elevated)")
	askCmd.Flags().StringVar(&askName, "name", "", "identity name for the access guard")
	rootCmd.AddCommand(askCmd)
}
