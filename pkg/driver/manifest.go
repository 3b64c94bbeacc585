package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest models solgo.yaml, the project file of a contract package:
// where the sources live, how import prefixes are remapped and which
// external source packages the project depends on.
type Manifest struct {
	Path string

	Name       string
	Version    string
	Authors    []string
	SourceRoot string
	OutputDir  string

	// Sources lists the entry-point files relative to SourceRoot. An
	// empty list means the whole source root.
	Sources []string

	// CacheDir holds fetched import packages, relative to the project
	// root unless absolute.
	CacheDir string

	// EVMVersion names the execution target the build is pinned to.
	EVMVersion string

	// Remappings rewrite import path prefixes before resolution, e.g.
	// "@tokens/" -> "vendor/tokens/src/".
	Remappings map[string]string

	Dependencies map[string]*DependencySpec

	// RemappingOrder keeps the prefixes longest-first so the most
	// specific remapping wins.
	RemappingOrder []string
}

// DependencySpec describes one external source package. Exactly one of
// version, git or path must be given; tag, branch and rev qualify git.
type DependencySpec struct {
	Version string `yaml:"version"`
	Git     string `yaml:"git"`
	Tag     string `yaml:"tag"`
	Branch  string `yaml:"branch"`
	Rev     string `yaml:"rev"`
	Path    string `yaml:"path"`
}

// UnmarshalYAML accepts the shorthand `name: "1.2.3"` next to the full
// mapping form.
func (d *DependencySpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d.Version = strings.TrimSpace(value.Value)
		return nil
	}
	type plain DependencySpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = DependencySpec(p)
	return nil
}

type manifestDisk struct {
	Name         string                     `yaml:"name"`
	Version      string                     `yaml:"version"`
	Authors      []string                   `yaml:"authors"`
	SourceRoot   string                     `yaml:"source_root"`
	OutputDir    string                     `yaml:"output_dir"`
	Sources      []string                   `yaml:"sources"`
	CacheDir     string                     `yaml:"cache_dir"`
	EVMVersion   string                     `yaml:"evm_version"`
	Remappings   map[string]string          `yaml:"remappings"`
	Dependencies map[string]*DependencySpec `yaml:"dependencies"`
}

// LoadManifest parses and validates a solgo.yaml.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw manifestDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	manifest := &Manifest{
		Path:         abs,
		Name:         strings.TrimSpace(raw.Name),
		Version:      strings.TrimSpace(raw.Version),
		Authors:      raw.Authors,
		SourceRoot:   strings.TrimSpace(raw.SourceRoot),
		OutputDir:    strings.TrimSpace(raw.OutputDir),
		Sources:      raw.Sources,
		CacheDir:     strings.TrimSpace(raw.CacheDir),
		EVMVersion:   strings.TrimSpace(raw.EVMVersion),
		Remappings:   raw.Remappings,
		Dependencies: raw.Dependencies,
	}
	manifest.normalize()
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) normalize() {
	if m.SourceRoot == "" {
		m.SourceRoot = "contracts"
	}
	if m.OutputDir == "" {
		m.OutputDir = "build"
	}
	if m.CacheDir == "" {
		m.CacheDir = filepath.Join(".solgo", "cache")
	}
	if m.EVMVersion == "" {
		m.EVMVersion = "cancun"
	}
	if m.Remappings == nil {
		m.Remappings = map[string]string{}
	}
	if m.Dependencies == nil {
		m.Dependencies = map[string]*DependencySpec{}
	}
	m.RemappingOrder = m.RemappingOrder[:0]
	for prefix := range m.Remappings {
		m.RemappingOrder = append(m.RemappingOrder, prefix)
	}
	sort.Slice(m.RemappingOrder, func(i, j int) bool {
		a, b := m.RemappingOrder[i], m.RemappingOrder[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

var evmVersions = map[string]bool{
	"homestead":      true,
	"byzantium":      true,
	"constantinople": true,
	"petersburg":     true,
	"istanbul":       true,
	"berlin":         true,
	"london":         true,
	"paris":          true,
	"shanghai":       true,
	"cancun":         true,
	"prague":         true,
}

func (m *Manifest) validate() error {
	var problems []string
	if m.Name == "" {
		problems = append(problems, "name must be provided")
	}
	if !evmVersions[m.EVMVersion] {
		problems = append(problems, fmt.Sprintf("evm_version: unknown target %q", m.EVMVersion))
	}
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := m.Dependencies[name]
		if spec == nil || (spec.Version == "" && spec.Git == "" && spec.Path == "") {
			problems = append(problems,
				fmt.Sprintf("dependencies.%s: must specify version, git, or path", name))
			continue
		}
		if spec.Git == "" && (spec.Tag != "" || spec.Branch != "" || spec.Rev != "") {
			problems = append(problems,
				fmt.Sprintf("dependencies.%s: tag, branch and rev require git", name))
		}
	}
	for prefix, target := range m.Remappings {
		if prefix == "" || target == "" {
			problems = append(problems, "remappings: empty prefix or target")
			break
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("manifest %s: %s", m.Path, strings.Join(problems, "; "))
	}
	return nil
}

// RemapImport rewrites one import path through the remapping table. The
// longest matching prefix wins; an unmatched path comes back unchanged.
func (m *Manifest) RemapImport(path string) string {
	for _, prefix := range m.RemappingOrder {
		if strings.HasPrefix(path, prefix) {
			return m.Remappings[prefix] + strings.TrimPrefix(path, prefix)
		}
	}
	return path
}

// SourcePaths resolves the manifest's source list against the source
// root. An empty list yields the source root itself.
func (m *Manifest) SourcePaths() []string {
	root := filepath.Join(filepath.Dir(m.Path), m.SourceRoot)
	if len(m.Sources) == 0 {
		return []string{root}
	}
	paths := make([]string, len(m.Sources))
	for i, source := range m.Sources {
		paths[i] = filepath.Join(root, source)
	}
	return paths
}

// SourcePath resolves an import path to a location on disk, applying
// remappings first and anchoring relative results at the project root.
func (m *Manifest) SourcePath(importPath string) string {
	remapped := m.RemapImport(importPath)
	if filepath.IsAbs(remapped) {
		return filepath.Clean(remapped)
	}
	return filepath.Join(filepath.Dir(m.Path), remapped)
}
