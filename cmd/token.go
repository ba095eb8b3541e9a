package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/paylinq/askhr/internal/identity"
	"github.com/paylinq/askhr/internal/model"
)

var (
	tokenTier string
	tokenName string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a credential token for testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := identity.NewSecretboxResolver(cfg.Identity.Key)
		if err != nil {
			return eris.Wrap(err, "init identity resolver")
		}

		token, err := resolver.Seal(model.AccessTier(tokenTier), tokenName)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenTier, "tier", string(model.TierRestricted), "access tier")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "identity name")
	_ = tokenCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(tokenCmd)
}
