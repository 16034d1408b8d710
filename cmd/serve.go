package cmd

import (
	"github.com/spf13/cobra"

	"vcrc/fluid"
	"vcrc/server"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cycle, analysis, sweep and history requests over a websocket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if serveFlags.addr != "" {
			cfg.Server.Addr = serveFlags.addr
		}
		s, err := server.NewServer(cfg, fluid.NewCorrelationOracle())
		if err != nil {
			return err
		}
		return s.Serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address, overrides [server] Addr")
}
