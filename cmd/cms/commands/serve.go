package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/internal/server"
)

const defaultServeAddr = "127.0.0.1:8080"

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve CMS content over HTTP",
		Long: `Expose members, news and categories as a read-only JSON API.

List routes answer with an empty result when the CMS is unavailable.
Detail routes answer 503 when unconfigured, 404 when the item does not
exist and 502 for any other CMS failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			go rt.sweepExpired(ctx, constants.CacheSweepInterval)

			srv := server.New(rt.service, rt.metrics, rt.logger.Zerolog())

			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().String("addr", defaultServeAddr, "address to listen on")

	return cmd
}
