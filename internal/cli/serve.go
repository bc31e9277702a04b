package cli

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/wavecx/wavecx-go/pkg/config"
	"github.com/wavecx/wavecx-go/pkg/httpserver"
	"github.com/wavecx/wavecx-go/pkg/mockapi"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		addr     string
		catalog  string
		tokenTTL time.Duration
		envFiles []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock targeted-content API",
		Long: `serve runs a local targeted-content API backed by a YAML catalog.

Settings come from WAVECX_MOCK_* environment variables (optionally loaded from
.env files) and are overridden by flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(envFiles...); err != nil {
				return err
			}
			var cfg mockapi.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}

			if cmd.Flags().Changed("addr") {
				cfg.HTTP.Addr = addr
			}
			if cmd.Flags().Changed("catalog") {
				cfg.Catalog = catalog
			}
			if cmd.Flags().Changed("token-ttl") {
				cfg.TokenTTL = tokenTTL
			}

			log := g.logger(cmd.ErrOrStderr())
			srv, err := mockapi.NewServer(cfg, log, httpserver.WithOnListen(func(a net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "mock API listening on http://%s\n", a)
			}))
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&catalog, "catalog", "", "Path to the content catalog YAML")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 15*time.Minute, "Session token lifetime (0 disables expiry)")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Environment files to load before reading configuration")
	return cmd
}
