package domain

import "path/filepath"

// Project is a local directory tree with one or more publication targets.
// Projects are owned by the surrounding project-management layer; the
// launcher receives one value per publish attempt.
type Project struct {
	// Name is the human-readable project name.
	Name string

	// Path is the absolute project root directory.
	Path string

	// PublishDir is an optional sub-directory (relative to Path) that is
	// published instead of the project root. A declared but absent
	// directory is a configuration error, not a missing-file warning.
	PublishDir string

	// BuildTask names an optional task to run before publishing.
	// Empty means no build step.
	BuildTask string

	// BuildTool is the command used to run tasks (default "bun").
	BuildTool string

	// Sites are the configured publication targets.
	Sites []Site
}

// PublishPath returns the directory that is bundled for publication:
// the project root, or the declared publish sub-directory.
func (p *Project) PublishPath() string {
	if p.PublishDir == "" {
		return p.Path
	}
	return filepath.Join(p.Path, p.PublishDir)
}

// SiteByName returns the named site.
func (p *Project) SiteByName(name string) (*Site, bool) {
	for i := range p.Sites {
		if p.Sites[i].Name == name {
			return &p.Sites[i], true
		}
	}
	return nil, false
}
