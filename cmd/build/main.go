package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	urfave "github.com/urfave/cli/v2"

	"github.com/3-lines-studio/calcsite"
	"github.com/3-lines-studio/calcsite/internal/adapters/cli"
	"github.com/3-lines-studio/calcsite/internal/adapters/env"
)

func main() {
	app := &urfave.App{
		Name:      "calcsite-build",
		Usage:     "render the calculator site into a static output directory",
		UsageText: "calcsite-build [options]",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "env-file", Value: env.DefaultEnvFile, Usage: "optional KEY=VALUE file loaded before reading the environment"},
			&urfave.StringFlag{Name: "content", Aliases: []string{"c"}, EnvVars: []string{env.EnvContentDir}, Usage: "content directory holding site.json and pages.json"},
			&urfave.StringFlag{Name: "out", Aliases: []string{"o"}, EnvVars: []string{env.EnvOutputDir}, Usage: "output directory (wiped on every build)"},
			&urfave.StringFlag{Name: "base-url", EnvVars: []string{env.EnvBaseURL}, Usage: "override base_url from site.json"},
			&urfave.BoolFlag{Name: "allow-duplicate-slugs", Usage: "let later pages overwrite earlier pages with the same slug"},
			&urfave.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "list every written file"},
			&urfave.StringFlag{Name: "log-level", EnvVars: []string{env.EnvLogLevel}, Usage: "debug, info, warn or error"},
			&urfave.StringFlag{Name: "log-format", EnvVars: []string{env.EnvLogFormat}, Usage: "text or json"},
			&urfave.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&urfave.BoolFlag{Name: "no-color", Usage: "disable colored output"},
		},
		Action: buildAction,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func buildAction(c *urfave.Context) error {
	output := cli.NewOutput()
	if c.Bool("no-color") {
		output.DisableColors()
	}

	cfg, err := env.LoadConfig(c.String("env-file"))
	if err != nil {
		output.PrintHeader("Calcsite Build")
		output.PrintError("Failed to load %s: %v", c.String("env-file"), err)
		return err
	}

	contentDir := firstNonEmpty(c.String("content"), cfg.ContentDir)
	outputDir := firstNonEmpty(c.String("out"), cfg.OutputDir)
	baseURL := firstNonEmpty(c.String("base-url"), cfg.BaseURL)

	level := env.ParseLogLevel(firstNonEmpty(c.String("log-level"), cfg.LogLevel))
	if c.Bool("quiet") {
		level = env.ParseLogLevel("error")
	}
	logger := cli.NewLogger(os.Stderr, firstNonEmpty(c.String("log-format"), cfg.LogFormat), level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = calcsite.Build(ctx, calcsite.Options{
		ContentDir:          contentDir,
		OutputDir:           outputDir,
		BaseURL:             baseURL,
		AllowDuplicateSlugs: c.Bool("allow-duplicate-slugs"),
		Verbose:             c.Bool("verbose"),
		Logger:              logger,
		Stdout:              output.Writer(),
		Stderr:              output.ErrWriter(),
	})
	if err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintDone(fmt.Sprintf("Site written to %s", outputDir))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
