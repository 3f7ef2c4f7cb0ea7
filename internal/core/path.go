package core

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	slugPattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	fieldIDPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: slug cannot be empty", ErrInvalidSlug)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q may only contain letters, digits, '-' and '_'", ErrInvalidSlug, slug)
	}
	return nil
}

func ValidateFieldID(id string) error {
	if !fieldIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidFieldID, id)
	}
	return nil
}

// CheckOutputDir fails with ErrOutputOverlapsContent when outputDir is
// contentDir or one of its ancestors, since resetting it would delete the
// content. Both paths are made absolute first.
func CheckOutputDir(outputDir, contentDir string) error {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output dir %q: %w", outputDir, err)
	}
	content, err := filepath.Abs(contentDir)
	if err != nil {
		return fmt.Errorf("failed to resolve content dir %q: %w", contentDir, err)
	}
	rel, err := filepath.Rel(out, content)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("%w: resetting %s would remove %s", ErrOutputOverlapsContent, out, content)
	}
	return nil
}

// DuplicateSlugs returns every slug that appears more than once, in order
// of its second occurrence.
func DuplicateSlugs(pages []PageDefinition) []string {
	seen := make(map[string]int, len(pages))
	var dups []string
	for _, p := range pages {
		seen[p.Slug]++
		if seen[p.Slug] == 2 {
			dups = append(dups, p.Slug)
		}
	}
	return dups
}

// ValidatePages checks the few invariants the output layout and the
// generated script depend on. Duplicate slugs are only reported when
// allowDuplicates is false.
func ValidatePages(pages []PageDefinition, allowDuplicates bool) error {
	for i, p := range pages {
		if err := ValidateSlug(p.Slug); err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}
		ids := make(map[string]struct{}, len(p.Fields))
		for _, f := range p.Fields {
			if err := ValidateFieldID(f.ID); err != nil {
				return fmt.Errorf("page %q: %w", p.Slug, err)
			}
			if _, ok := ids[f.ID]; ok {
				return fmt.Errorf("page %q: %w: %q is declared twice", p.Slug, ErrInvalidFieldID, f.ID)
			}
			ids[f.ID] = struct{}{}
		}
	}
	if allowDuplicates {
		return nil
	}
	if dups := DuplicateSlugs(pages); len(dups) > 0 {
		return fmt.Errorf("%w: %v", ErrDuplicateSlug, dups)
	}
	return nil
}
