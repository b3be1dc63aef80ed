package pathsafe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Constraint describes how a user-supplied path must be confined before any
// file access happens. AllowedRoot is a subtree given relative to RepoRoot.
type Constraint struct {
	ArgName     string
	RepoRoot    string
	AllowedRoot string
	MustExist   bool
}

// Resolve validates raw against the constraint and returns the absolute
// resolved location. Symlinks are resolved before the containment checks, so
// a link planted inside the allowed subtree cannot redirect reads or writes
// outside the repository. The returned error names the offending argument so
// the caller can print it verbatim.
func Resolve(raw string, c Constraint) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%s path cannot be empty", c.ArgName)
	}
	if filepath.IsAbs(raw) {
		return "", fmt.Errorf("%s must be a repo-relative path", c.ArgName)
	}
	for _, part := range strings.Split(filepath.ToSlash(raw), "/") {
		if part == ".." {
			return "", fmt.Errorf("%s cannot contain parent-directory traversal ('..')", c.ArgName)
		}
	}

	repoRoot, err := filepath.Abs(c.RepoRoot)
	if err != nil {
		return "", fmt.Errorf("%s: cannot resolve repository root: %w", c.ArgName, err)
	}
	repoRootResolved, err := resolveExisting(repoRoot)
	if err != nil {
		return "", fmt.Errorf("%s: cannot resolve repository root: %w", c.ArgName, err)
	}
	resolved, err := resolveExisting(filepath.Clean(filepath.Join(repoRoot, raw)))
	if err != nil {
		return "", fmt.Errorf("%s: cannot resolve path: %w", c.ArgName, err)
	}
	allowedRoot, err := resolveExisting(filepath.Clean(filepath.Join(repoRoot, c.AllowedRoot)))
	if err != nil {
		return "", fmt.Errorf("%s: cannot resolve allowed subtree: %w", c.ArgName, err)
	}

	if !descends(repoRootResolved, resolved) {
		return "", fmt.Errorf("%s escapes repository root", c.ArgName)
	}
	if !descends(allowedRoot, resolved) {
		return "", fmt.Errorf("%s must stay under %s", c.ArgName, filepath.ToSlash(c.AllowedRoot))
	}

	if c.MustExist {
		info, err := os.Stat(resolved)
		if err != nil || !info.Mode().IsRegular() {
			return "", fmt.Errorf("%s file does not exist: %s", c.ArgName, resolved)
		}
	}
	return resolved, nil
}

// resolveExisting resolves symlinks in the deepest existing ancestor of path
// and rejoins the components that do not exist yet, so output locations can
// be checked before they are created.
func resolveExisting(path string) (string, error) {
	var remainder []string
	cur := path
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{resolved}, remainder...)...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			// Nothing on the way to the filesystem root exists.
			return path, nil
		}
		remainder = append([]string{filepath.Base(cur)}, remainder...)
		cur = parent
	}
}

// descends reports whether path is root itself or located inside it.
func descends(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
