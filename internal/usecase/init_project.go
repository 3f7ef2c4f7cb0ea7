package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/3-lines-studio/calcsite/internal/adapters/fs"
	"github.com/3-lines-studio/calcsite/internal/templates"
)

type InitInput struct {
	ProjectDir string
	Template   string
	SiteName   string
	BaseURL    string
}

type InitOutput struct {
	Success bool
	Files   []string
	Error   error
}

type InitService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewInitService(fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		fs:  fs,
		cli: cli,
	}
}

// InitProject copies the named starter into ProjectDir. Files ending in
// .tmpl have the site name and base URL filled in and the suffix dropped.
func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("Calcsite Init")

	if s.fs.FileExists(input.ProjectDir) {
		entries, err := s.fs.ReadDir(input.ProjectDir)
		if err != nil {
			return InitOutput{Error: fmt.Errorf("failed to read directory: %w", err)}
		}
		if len(entries) > 0 {
			return InitOutput{Error: fmt.Errorf("directory '%s' already exists and is not empty", input.ProjectDir)}
		}
	}

	name := input.Template
	if name == "" {
		name = "starter"
	}
	starter, err := templates.GetTemplate(name)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			return InitOutput{Error: fmt.Errorf("invalid template '%s', expected one of %v", name, templates.ValidTemplates())}
		}
		return InitOutput{Error: err}
	}
	templateFS := fs.NewReadOnlyFileSystem(starter)

	data := templates.TemplateData{
		Name:    input.SiteName,
		BaseURL: input.BaseURL,
	}
	if data.Name == "" {
		data.Name = templates.DeriveSiteName(input.ProjectDir)
	}
	if data.BaseURL == "" {
		data.BaseURL = "https://example.com"
	}

	var files []string
	err = templateFS.WalkDir(".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		body, err := templateFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := templates.ProcessFilename(path)
		targetPath = filepath.Join(input.ProjectDir, filepath.FromSlash(targetPath))

		if err := s.fs.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", targetPath, err)
		}
		if err := s.fs.WriteFile(targetPath, templates.ProcessContent(body, isTemplate, data), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			s.cli.PrintFile(targetPath + " (generated)")
		} else {
			s.cli.PrintFile(targetPath)
		}
		files = append(files, targetPath)
		return nil
	})
	if err != nil {
		return InitOutput{Files: files, Error: err}
	}

	s.cli.PrintSuccess("Created %d files using '%s' template", len(files), name)
	return InitOutput{Success: true, Files: files}
}
