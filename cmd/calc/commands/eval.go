package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/evalclient"
	"github.com/csheth/calc/internal/logging"
)

const evalTimeout = 10 * time.Second

var errIncomplete = errors.New("incomplete expression")

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "eval <expression>",
		Short:        "Evaluate one expression and print the result",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := openLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := evalclient.NewFromEnv(evalclient.Config{Endpoint: evaluatorURL})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(logging.WithLogger(ctxOrBackground(cmd.Context()), logger), evalTimeout)
			defer cancel()

			expression := strings.Join(args, " ")
			outcome := calc.Calculate(ctx, client, expression)
			if outcome.Error {
				if outcome.Value == expression {
					return fmt.Errorf("%w: %q", errIncomplete, expression)
				}
				return errors.New(outcome.Value)
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Value)
			return nil
		},
	}
}
