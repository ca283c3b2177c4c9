package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/configd/cmd/app/commands"
	"github.com/allisson/configd/internal/app"
	authService "github.com/allisson/configd/internal/auth/service"
	"github.com/allisson/configd/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-access-token",
			Usage: "Generate a bearer token for the raw secret value endpoint",
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

				return commands.RunCreateAccessToken(
					authService.NewTokenService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
