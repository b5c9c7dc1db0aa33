package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTokenCmd() *cobra.Command {
	var (
		secret, issuer, subject string
		roles                   []string
		ttl                     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		Long: `Token signs a JWT the service accepts. The secret and issuer default to
JWT_SECRET and JWT_ISSUER.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.AutomaticEnv()
			if secret == "" {
				secret = viper.GetString("JWT_SECRET")
			}
			if issuer == "" {
				issuer = viper.GetString("JWT_ISSUER")
			}
			for i, r := range roles {
				roles[i] = strings.ToUpper(strings.TrimSpace(r))
			}
			token, err := middleware.IssueToken(secret, issuer, subject, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 signing secret")
	cmd.Flags().StringVar(&issuer, "issuer", "", "Token issuer")
	cmd.Flags().StringVar(&subject, "subject", "", "User ID the token is issued to")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Comma separated roles, e.g. ACCOUNTS_PERSONNEL")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
