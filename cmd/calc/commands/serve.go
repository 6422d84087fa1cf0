package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/csheth/calc/internal/evalserver"
	"github.com/csheth/calc/internal/evaluator"
)

const addrEnvVar = "CALC_ADDR"

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP evaluator service",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := openLogger(os.Stdout)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(ctxOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := evalserver.New(evalserver.Config{
				Addr:      firstNonEmpty(addr, os.Getenv(addrEnvVar)),
				Evaluator: evaluator.New(),
				Logger:    logger,
			})
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :4000, env "+addrEnvVar+")")
	return cmd
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
