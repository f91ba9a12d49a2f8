// Package bundle builds the hashed tree representation of a directory for
// publication. Every regular file is read and hashed; the tree carries
// hashes only, while the raw bytes are collected into a content table used
// to satisfy missing-part requests.
package bundle

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

// vcsDir is the single path component excluded from bundles.
const vcsDir = ".git"

// HashContent computes the content hash (SHA-256) of raw bytes. The hash
// identifies content independent of name and location.
func HashContent(content []byte) []byte {
	sum := sha256.Sum256(content)
	return sum[:]
}

// ResolveRoot returns the directory to bundle for a project. A publish
// sub-directory that is declared but absent is a configuration error.
func ResolveRoot(project *domain.Project) (string, error) {
	root := project.PublishPath()
	info, err := os.Stat(root)
	if err != nil {
		if project.PublishDir != "" && os.IsNotExist(err) {
			return "", fmt.Errorf("%w: publish directory %q does not exist", domain.ErrInvalidConfig, project.PublishDir)
		}
		return "", fmt.Errorf("stat publish root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: publish root %q is not a directory", domain.ErrInvalidConfig, root)
	}
	return root, nil
}

// Build walks the directory tree rooted at root and returns its bundle.
// Identical content at any number of paths is hashed identically and
// stored once in the content table.
func Build(root string) (*domain.Bundle, error) {
	table := make(domain.ContentTable)
	node, err := buildDir(root, table)
	if err != nil {
		return nil, err
	}
	logger.Debug("Bundled %d files (%d distinct blobs, %d bytes) from %s",
		node.FileCount(), len(table), table.TotalSize(), root)
	return &domain.Bundle{Root: node, Table: table}, nil
}

// buildDir reads one directory level and recurses into children.
func buildDir(dir string, table domain.ContentTable) (*domain.Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	node := &domain.Node{Children: make(map[string]*domain.Node)}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		switch {
		case entry.IsDir():
			if name == vcsDir {
				continue
			}
			child, err := buildDir(path, table)
			if err != nil {
				return nil, err
			}
			node.Children[name] = child

		case entry.Type().IsRegular():
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read file %s: %w", path, err)
			}
			hash := HashContent(content)
			table.Put(hash, content)
			node.Children[name] = &domain.Node{Hash: hash}

		default:
			// Symlinks, sockets and devices are not publishable content.
			logger.Debug("Skipping irregular entry %s", path)
		}
	}
	return node, nil
}
