package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// SourceFetcher materialises the manifest's source dependencies into a
// local cache so imports like "@tokens/ERC20.sol" can be remapped onto
// disk. Git dependencies are cloned and pinned to a commit; path
// dependencies are used in place.
type SourceFetcher struct {
	cacheDir string
}

// NewSourceFetcher returns a fetcher rooted at cacheDir, or nil when no
// cache directory is configured (fetching disabled).
func NewSourceFetcher(cacheDir string) *SourceFetcher {
	if cacheDir == "" {
		return nil
	}
	return &SourceFetcher{cacheDir: cacheDir}
}

// Fetch resolves one dependency and returns its lock entry together with
// the directory the sources live in.
func (f *SourceFetcher) Fetch(name string, spec *DependencySpec) (*LockedPackage, string, error) {
	if f == nil {
		return nil, "", fmt.Errorf("fetch %s: no cache directory configured", name)
	}
	if spec == nil {
		return nil, "", fmt.Errorf("fetch %s: missing dependency spec", name)
	}

	if path := strings.TrimSpace(spec.Path); path != "" {
		return f.fetchPath(name, path)
	}
	if url := strings.TrimSpace(spec.Git); url != "" {
		return f.fetchGit(name, url, spec)
	}
	return nil, "", fmt.Errorf("fetch %s: only git and path dependencies can be materialised", name)
}

func (f *SourceFetcher) fetchPath(name, path string) (*LockedPackage, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: resolve %s: %w", name, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("fetch %s: %s is not a directory", name, abs)
	}
	checksum, err := dirChecksum(abs)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: checksum: %w", name, err)
	}
	return &LockedPackage{
		Name:     name,
		Version:  "local",
		Source:   "path:" + abs,
		Checksum: checksum,
	}, abs, nil
}

func (f *SourceFetcher) fetchGit(name, url string, spec *DependencySpec) (*LockedPackage, string, error) {
	revision, descriptor, err := gitRevisionFromSpec(spec)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", name, err)
	}

	baseDir := filepath.Join(f.cacheDir, "src", sanitizePathSegment(name))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, "", err
	}

	// A previously pinned checkout is reused without touching the network.
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return f.lockEntry(name, rev, url, rev, existing)
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return nil, "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return nil, "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	version := pinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return f.lockEntry(name, version, url, hash.String(), targetDir)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, "", err
	}
	return f.lockEntry(name, version, url, hash.String(), targetDir)
}

func (f *SourceFetcher) lockEntry(name, version, url, commit, dir string) (*LockedPackage, string, error) {
	checksum, err := dirChecksum(dir)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: checksum: %w", name, err)
	}
	return &LockedPackage{
		Name:     name,
		Version:  version,
		Source:   fmt.Sprintf("git+%s@%s", url, commit),
		Checksum: checksum,
	}, dir, nil
}

func gitRevisionFromSpec(spec *DependencySpec) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("git dependencies require rev, tag, or branch")
}

func pinnedVersion(descriptor, commit string) string {
	commit = strings.TrimSpace(commit)
	descriptor = strings.TrimSpace(descriptor)
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "head"
	}
	return b.String()
}

// dirChecksum hashes every file under path, name plus content, into one
// stable digest.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.Base(p)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
