// internal/client/cli/command.go
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"cinelog/internal/client/apiclient"
	"cinelog/internal/client/session"
	"cinelog/internal/movies"
	"cinelog/internal/util"
)

// NewCommand returns the cinelog client command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "cinelog",
		Usage: "Search movies and keep a review log",
		Description: `Interactive terminal client for the cinelog API.

Account and review operations go to the API; movie search and
recommendations go straight to the movie metadata service.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   apiclient.DefaultBaseURL,
				Usage:   "Base URL of the cinelog API",
				Sources: cli.EnvVars("CINELOG_API_URL"),
			},
			&cli.StringFlag{
				Name:    "omdb-url",
				Value:   movies.DefaultBaseURL,
				Usage:   "Base URL of the OMDb-compatible movie service",
				Sources: cli.EnvVars("OMDB_URL"),
			},
			&cli.StringFlag{
				Name:    "omdb-api-key",
				Usage:   "API key for the movie service",
				Sources: cli.EnvVars("OMDB_API_KEY"),
			},
			&cli.DurationFlag{
				Name:    "omdb-timeout",
				Value:   movies.DefaultTimeout,
				Usage:   "Timeout for one movie service request",
				Sources: cli.EnvVars("OMDB_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:  "api-timeout",
				Value: 10 * time.Second,
				Usage: "Timeout for one API request",
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Serve movie service metrics on this address (disabled when empty)",
				Sources: cli.EnvVars("CINELOG_METRICS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := util.NewLogger(os.Stderr, cmd.String("log-level"), "console")

			if addr := cmd.String("metrics-addr"); addr != "" {
				ms, err := startMetrics(addr, logger)
				if err != nil {
					return err
				}
				defer ms.Close()
			}

			movieClient, err := movies.NewClient(movies.Config{
				BaseURL: cmd.String("omdb-url"),
				APIKey:  cmd.String("omdb-api-key"),
				Timeout: cmd.Duration("omdb-timeout"),
			}, logger)
			if err != nil {
				return fmt.Errorf("failed to create movie client: %w", err)
			}

			api := apiclient.New(cmd.String("api-url"), cmd.Duration("api-timeout"))
			ctrl := session.NewController(api, movieClient, logger)

			NewApp(ctrl, bufio.NewScanner(os.Stdin), os.Stdout).Run(ctx)
			return nil
		},
	}
}
