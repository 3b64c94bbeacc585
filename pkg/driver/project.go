package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	manifestFileName = "solgo.yaml"
	lockFileName     = "solgo.lock"
	toolName         = "solgo"
)

// Project ties a manifest to its lockfile and root directory.
type Project struct {
	Root     string
	Manifest *Manifest
	Lock     *Lockfile
}

// LoadProject discovers the project containing start by walking up the
// directory tree until a solgo.yaml is found, then loads the manifest
// and, when present, the lockfile next to it.
func LoadProject(start string) (*Project, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("project: resolve %s: %w", start, err)
	}

	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		candidate := filepath.Join(dir, manifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return loadProjectAt(dir, candidate)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("project: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, fmt.Errorf("project: no %s found above %s", manifestFileName, abs)
}

func loadProjectAt(root, manifestPath string) (*Project, error) {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	project := &Project{Root: root, Manifest: manifest}

	lockPath := filepath.Join(root, lockFileName)
	if _, err := os.Stat(lockPath); err == nil {
		lock, err := LoadLockfile(lockPath)
		if err != nil {
			return nil, err
		}
		project.Lock = lock
	} else {
		project.Lock = NewLockfile(manifest.Name, toolName)
		project.Lock.Path = lockPath
	}
	return project, nil
}

// Fetcher builds a source fetcher rooted at the manifest's cache
// directory.
func (p *Project) Fetcher() *SourceFetcher {
	dir := p.Manifest.CacheDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.Root, dir)
	}
	return NewSourceFetcher(dir)
}

// EnsureDependencies fetches every git and path dependency of the
// manifest through the fetcher, pins the results in the lockfile and
// installs a remapping "<name>/" onto the fetched directory. The updated
// lockfile is written back to disk.
func (p *Project) EnsureDependencies(fetcher *SourceFetcher) error {
	for name, spec := range p.Manifest.Dependencies {
		if spec != nil && spec.Git == "" && spec.Path == "" {
			// Version-only dependencies come from a registry; nothing to
			// materialise locally.
			continue
		}
		locked, dir, err := fetcher.Fetch(name, spec)
		if err != nil {
			return err
		}
		if previous := p.Lock.Find(name); previous != nil && previous.Checksum != locked.Checksum {
			if previous.Version == locked.Version {
				return fmt.Errorf("project: dependency %s@%s changed content since it was locked",
					name, locked.Version)
			}
		}
		p.Lock.Upsert(locked)
		p.Manifest.Remappings[name+"/"] = dir + string(os.PathSeparator)
	}
	p.Manifest.normalize()
	return WriteLockfile(p.Lock, p.Lock.Path)
}
