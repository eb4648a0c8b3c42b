package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/ballot-ledger/auth"
	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/cliparse"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <identity>",
		Short: "Print the X-Caller-Token for an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if args[0] == "" {
				return auth.ErrEmptyIdentity
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), auth.GenerateCallerToken(ballot.Identity(args[0]), cfg.CallerKeySalt))
			return err
		},
	}
	cliparse.RegisterFlags(cmd.Flags())
	return cmd
}
