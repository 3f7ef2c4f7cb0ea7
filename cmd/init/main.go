package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	urfave "github.com/urfave/cli/v2"

	"github.com/3-lines-studio/calcsite/internal/adapters/cli"
	"github.com/3-lines-studio/calcsite/internal/adapters/fs"
	"github.com/3-lines-studio/calcsite/internal/usecase"
)

func main() {
	app := &urfave.App{
		Name:      "calcsite-init",
		Usage:     "create a starter content directory",
		UsageText: "calcsite-init [options] <project-dir>",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "template", Value: "starter", Usage: "starter template to copy"},
			&urfave.StringFlag{Name: "name", Usage: "site name (default: directory name)"},
			&urfave.StringFlag{Name: "base-url", Usage: "site base URL (default: https://example.com)"},
		},
		Action: initAction,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func initAction(c *urfave.Context) error {
	output := cli.NewOutput()

	if c.NArg() < 1 {
		_ = urfave.ShowAppHelp(c)
		return errors.New("missing project directory")
	}

	absProjectDir, err := filepath.Abs(c.Args().First())
	if err != nil {
		output.PrintHeader("Calcsite Init")
		output.PrintError("Failed to resolve project directory: %v", err)
		return err
	}

	service := usecase.NewInitService(fs.NewOSFileSystem(), output)
	result := service.InitProject(usecase.InitInput{
		ProjectDir: absProjectDir,
		Template:   c.String("template"),
		SiteName:   c.String("name"),
		BaseURL:    c.String("base-url"),
	})
	if result.Error != nil {
		output.PrintError("%v", result.Error)
		return result.Error
	}

	fmt.Fprintln(output.Writer())
	output.PrintStep("Next steps:")
	output.PrintStep("cd %s", absProjectDir)
	output.PrintStep("calcsite-doctor content")
	output.PrintStep("calcsite-build --content content --out public")
	return nil
}
