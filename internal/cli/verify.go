package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wavecx/wavecx-go/pkg/verification"
)

const signingSecretEnv = "WAVECX_SIGNING_SECRET"

var errVerificationMismatch = errors.New("verification code does not match")

func newVerifyCmd() *cobra.Command {
	var (
		secret string
		check  string
	)

	cmd := &cobra.Command{
		Use:   "verify <user-id>",
		Short: "Compute or check a user id verification code",
		Long: `verify prints the HMAC-SHA256 verification code of a user id. With --check
it compares a code instead and fails on mismatch.

The signing secret defaults to $` + signingSecretEnv + `. Compute codes on a
server: the secret must never be embedded in a client application.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv(signingSecretEnv)
			}

			if check != "" {
				if !verification.Verify(secret, args[0], check) {
					return errVerificationMismatch
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			code, err := verification.Sign(secret, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default $"+signingSecretEnv+")")
	cmd.Flags().StringVar(&check, "check", "", "Verification code to check instead of printing one")
	return cmd
}
