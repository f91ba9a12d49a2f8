package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// ProjectFileName is the project configuration file looked up in the
// project root.
const ProjectFileName = "pagelift.toml"

// defaultBuildTool runs project tasks when the config does not name one.
const defaultBuildTool = "bun"

// projectFile is the TOML shape of pagelift.toml.
type projectFile struct {
	Name       string     `toml:"name"`
	PublishDir string     `toml:"publish_dir,omitempty"`
	BuildTask  string     `toml:"build_task,omitempty"`
	BuildTool  string     `toml:"build_tool,omitempty"`
	Sites      []siteFile `toml:"sites"`
}

type siteFile struct {
	Name    string `toml:"name"`
	Domain  string `toml:"domain"`
	Service string `toml:"service"`
	Team    string `toml:"team,omitempty"`
}

// LoadProject reads and validates the project configuration in dir.
func LoadProject(dir string) (*domain.Project, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no %s in %s", domain.ErrNotFound, ProjectFileName, dir)
		}
		return nil, fmt.Errorf("read project config: %w", err)
	}

	var pf projectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, path, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}

	project := &domain.Project{
		Name:       pf.Name,
		Path:       abs,
		PublishDir: pf.PublishDir,
		BuildTask:  pf.BuildTask,
		BuildTool:  pf.BuildTool,
	}
	if project.Name == "" {
		project.Name = filepath.Base(abs)
	}
	if project.BuildTool == "" {
		project.BuildTool = defaultBuildTool
	}

	for i, sf := range pf.Sites {
		if sf.Name == "" {
			return nil, fmt.Errorf("%w: site %d has no name", domain.ErrInvalidConfig, i+1)
		}
		if sf.Domain == "" {
			return nil, fmt.Errorf("%w: site %q has no domain", domain.ErrInvalidConfig, sf.Name)
		}
		if sf.Service == "" {
			return nil, fmt.Errorf("%w: site %q has no service", domain.ErrInvalidConfig, sf.Name)
		}
		project.Sites = append(project.Sites, domain.Site{
			Name:    sf.Name,
			Domain:  sf.Domain,
			Service: sf.Service,
			TeamID:  sf.Team,
			Status:  domain.SiteIdle,
		})
	}

	return project, nil
}
