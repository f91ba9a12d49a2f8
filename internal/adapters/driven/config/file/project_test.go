package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

func writeProjectFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(content), 0o644))
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
name = "my-site"
publish_dir = "dist"
build_task = "build"
build_tool = "npm"

[[sites]]
name = "production"
domain = "example.com"
service = "pages.example.net"
team = "team-1"

[[sites]]
name = "staging"
domain = "staging.example.com"
service = "pages.example.net"
`)

	project, err := LoadProject(dir)
	require.NoError(t, err)

	assert.Equal(t, "my-site", project.Name)
	assert.Equal(t, "dist", project.PublishDir)
	assert.Equal(t, "build", project.BuildTask)
	assert.Equal(t, "npm", project.BuildTool)

	require.Len(t, project.Sites, 2)
	assert.Equal(t, "production", project.Sites[0].Name)
	assert.Equal(t, "example.com", project.Sites[0].Domain)
	assert.Equal(t, "team-1", project.Sites[0].TeamID)
	assert.Equal(t, domain.SiteIdle, project.Sites[0].Status)
	assert.Empty(t, project.Sites[1].TeamID)
}

func TestLoadProject_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
[[sites]]
name = "production"
domain = "example.com"
service = "pages.example.net"
`)

	project, err := LoadProject(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), project.Name, "name defaults to directory")
	assert.Equal(t, "bun", project.BuildTool)
	assert.Empty(t, project.PublishDir)
	assert.Empty(t, project.BuildTask)
}

func TestLoadProject_Missing(t *testing.T) {
	_, err := LoadProject(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadProject_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `name = "broken`)

	_, err := LoadProject(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadProject_SiteValidation(t *testing.T) {
	tests := []struct {
		name string
		site string
	}{
		{"missing name", "domain = \"example.com\"\nservice = \"pages.example.net\""},
		{"missing domain", "name = \"prod\"\nservice = \"pages.example.net\""},
		{"missing service", "name = \"prod\"\ndomain = \"example.com\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeProjectFile(t, dir, "[[sites]]\n"+tt.site+"\n")

			_, err := LoadProject(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoadProject_NoSites(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `name = "empty"`)

	project, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Empty(t, project.Sites)
}
