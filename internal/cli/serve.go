package cli

import (
	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/dashboard"
	"commitgen.dev/commitgen/internal/runtime"
)

// newServeCmd creates the serve command
func newServeCmd() *cobra.Command {
	var (
		addr string
		open bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the suggestion dashboard over HTTP",
		Long: `Start a local web dashboard for the repository.

The dashboard shows the staged snapshot, serves suggestions over a JSON API
and can create commits. It binds to loopback by default; suggestions share
the same cache as the suggest command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Splog.Close() }()

			srv := dashboard.NewServer(rctx, addr)
			srv.OpenBrowser = open
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Address to listen on")
	cmd.Flags().BoolVar(&open, "open", false, "Open the dashboard in your browser")

	return cmd
}
