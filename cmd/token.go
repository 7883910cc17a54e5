package cmd

import (
	"fmt"
	"time"

	"github.com/Kariqs/orders-api/middlewares"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed JWT for calling protected routes",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "ops", "token subject")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", middlewares.RoleAdmin, "role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	auth, err := middlewares.NewJWTAuthenticator(cfg.JWTSecret)
	if err != nil {
		return err
	}
	token, err := auth.Issue(middlewares.Identity{Subject: tokenSubject, Email: tokenEmail, Role: tokenRole}, tokenTTL)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
