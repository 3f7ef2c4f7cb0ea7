package main

import (
	"errors"
	"os"

	urfave "github.com/urfave/cli/v2"

	"github.com/3-lines-studio/calcsite/internal/adapters/cli"
	"github.com/3-lines-studio/calcsite/internal/adapters/env"
	"github.com/3-lines-studio/calcsite/internal/adapters/fs"
	"github.com/3-lines-studio/calcsite/internal/usecase"
)

func main() {
	app := &urfave.App{
		Name:      "calcsite-doctor",
		Usage:     "check a content directory without building",
		UsageText: "calcsite-doctor [content-dir]",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "env-file", Value: env.DefaultEnvFile, Usage: "optional KEY=VALUE file loaded before reading the environment"},
			&urfave.BoolFlag{Name: "no-color", Usage: "disable colored output"},
		},
		Action: doctorAction,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func doctorAction(c *urfave.Context) error {
	output := cli.NewOutput()
	if c.Bool("no-color") {
		output.DisableColors()
	}

	cfg, err := env.LoadConfig(c.String("env-file"))
	if err != nil {
		output.PrintHeader("Calcsite Doctor")
		output.PrintError("Failed to load %s: %v", c.String("env-file"), err)
		return err
	}

	contentDir := cfg.ContentDir
	if c.NArg() > 0 {
		contentDir = c.Args().First()
	}

	service := usecase.NewDoctorService(fs.NewOSFileSystem(), output, nil)
	result := service.CheckContent(usecase.DoctorInput{ContentDir: contentDir})
	if result.Error != nil {
		return result.Error
	}
	if !result.Healthy() {
		return errors.New("content has problems")
	}
	return nil
}
