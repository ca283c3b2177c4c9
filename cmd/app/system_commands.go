package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/configd/cmd/app/commands"
	"github.com/allisson/configd/internal/app"
	"github.com/allisson/configd/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "list-services",
			Usage: "List the service configuration documents stored under CONFIG_DIR",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.ConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunListServices(
					ctx,
					configUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "generate-env",
			Usage: "Write the config document of a service as a KEY=value env file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "service",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Service name",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   ".env.generated",
					Usage:   "Output file path",
				},
				&cli.StringFlag{
					Name:  "runtime",
					Usage: "Append TARGET_RUNTIME=<runtime> to the output",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.ConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerateEnv(
					ctx,
					configUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("service"),
					cmd.String("output"),
					cmd.String("runtime"),
				)
			},
		},
	}
}
