package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/configd/cmd/app/commands"
	"github.com/allisson/configd/internal/app"
	"github.com/allisson/configd/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key for the secrets store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to wrap the key file (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
				&cli.StringFlag{
					Name:  "key-file",
					Value: "",
					Usage: "Where to write the KMS-wrapped key (defaults to CONFIG_DIR/.secrets/.encryption_key)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyFile := cmd.String("key-file")
				if keyFile == "" {
					keyFile = cfg.KeyFile()
				}

				return commands.RunCreateMasterKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
					keyFile,
				)
			},
		},
	}
}
