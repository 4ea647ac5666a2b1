package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/tokens"
)

func tokenCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := a.v.GetString("secret")
			if secret == "" {
				return errors.New("a signing secret is required (--secret or JWT_SECRET)")
			}
			raw, err := tokens.Generate(secret, args[0], name, a.v.GetDuration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("secret", "", "HS256 signing secret (JWT_SECRET)")
	f.Duration("ttl", 24*time.Hour, "token lifetime")
	f.StringVar(&name, "name", "", "display name claim")
	_ = a.v.BindPFlag("secret", f.Lookup("secret"))
	_ = a.v.BindPFlag("ttl", f.Lookup("ttl"))
	_ = a.v.BindEnv("secret", "JWT_SECRET")
	return cmd
}
