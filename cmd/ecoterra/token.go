package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhaysingh-22/EcoTerra/internal/api/middleware"
	"github.com/abhaysingh-22/EcoTerra/internal/config"
)

// newTokenCmd 为指定用户签发 JWT，用于本地调试和运维
func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if ttl <= 0 {
				ttl = cfg.JWTTTL
			}

			token, err := middleware.NewJWT([]byte(cfg.JWTSecret), cfg.JWTIssuer).GenerateToken(userID, ttl)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (token subject)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_TTL)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
