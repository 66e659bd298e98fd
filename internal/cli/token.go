package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/pkg/roles"
	"github.com/spf13/cobra"
)

var (
	tokenRole    string
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", "", "role carried by the token (required)")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject (default: the role name)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default: auth.access_token_ttl)")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a role",
	Long: `Issue a signed access token carrying a role.

Use an admin token as theme.remote.token on instances that sync their theme
to this one. auth.jwt_secret must be set, otherwise the server generates its
own secret at startup and will not accept the token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenRole == "" {
			return errors.New("--role is required")
		}
		r, err := roles.Parse(tokenRole)
		if err != nil {
			return err
		}
		secret := appConfig.GetString("auth.jwt_secret")
		if secret == "" {
			return errors.New("auth.jwt_secret is not configured")
		}

		ttl := tokenTTL
		if ttl == 0 {
			ttl = appConfig.GetDuration("auth.access_token_ttl")
		}
		subject := tokenSubject
		if subject == "" {
			subject = r.String()
		}

		signed, err := auth.NewTokenService([]byte(secret), ttl).IssueAccessToken(subject, subject, r)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, signed)
		return nil
	},
}
