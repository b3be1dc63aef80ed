package pathsafe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveRejectsEmptyPath(t *testing.T) {
	_, err := Resolve("", Constraint{ArgName: "--rest-openapi", RepoRoot: t.TempDir(), AllowedRoot: "docs/generated"})
	if err == nil {
		t.Fatal("Expected error for empty path")
	}
	if !strings.Contains(err.Error(), "--rest-openapi") {
		t.Errorf("Error should name the argument, got: %v", err)
	}
}

func TestResolveRejectsAbsolutePath(t *testing.T) {
	_, err := Resolve("/etc/passwd", Constraint{ArgName: "--links", RepoRoot: t.TempDir(), AllowedRoot: "contracts"})
	if err == nil {
		t.Fatal("Expected error for absolute path")
	}
	if !strings.Contains(err.Error(), "repo-relative") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestResolveRejectsParentTraversal(t *testing.T) {
	_, err := Resolve("../../etc/passwd", Constraint{ArgName: "--rest-openapi", RepoRoot: t.TempDir(), AllowedRoot: "docs/generated"})
	if err == nil {
		t.Fatal("Expected error for parent-directory traversal")
	}
	if !strings.Contains(err.Error(), "parent-directory traversal") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestResolveRejectsTraversalInMiddle(t *testing.T) {
	_, err := Resolve("docs/../../../etc/passwd", Constraint{ArgName: "--out", RepoRoot: t.TempDir(), AllowedRoot: "docs/generated"})
	if err == nil {
		t.Fatal("Expected error for embedded traversal segment")
	}
}

func TestResolveRejectsOutsideAllowedSubtree(t *testing.T) {
	root := t.TempDir()
	_, err := Resolve("contracts/links.toml", Constraint{ArgName: "--out", RepoRoot: root, AllowedRoot: "docs/generated"})
	if err == nil {
		t.Fatal("Expected error for path outside allowed subtree")
	}
	if !strings.Contains(err.Error(), "must stay under docs/generated") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestResolveMustExist(t *testing.T) {
	root := t.TempDir()
	_, err := Resolve("docs/generated/missing.json", Constraint{
		ArgName:     "--rest-openapi",
		RepoRoot:    root,
		AllowedRoot: "docs/generated",
		MustExist:   true,
	})
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestResolveMustExistRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs", "generated"), 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := Resolve("docs/generated", Constraint{
		ArgName:     "--rest-openapi",
		RepoRoot:    root,
		AllowedRoot: "docs/generated",
		MustExist:   true,
	})
	if err == nil {
		t.Fatal("Expected error for directory instead of regular file")
	}
}

func TestResolveAcceptsExistingFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "generated")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "rest-openapi.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, err := Resolve("docs/generated/rest-openapi.json", Constraint{
		ArgName:     "--rest-openapi",
		RepoRoot:    root,
		AllowedRoot: "docs/generated",
		MustExist:   true,
	})
	if err != nil {
		t.Fatalf("Failed to resolve existing file: %v", err)
	}
	if !filepath.IsAbs(resolved) {
		t.Errorf("Expected absolute path, got %s", resolved)
	}
	// The temp dir itself may sit behind a symlink
	want, err := filepath.EvalSymlinks(file)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != want {
		t.Errorf("Expected %s, got %s", want, resolved)
	}
}

func TestResolveAllowsNewFileForOutput(t *testing.T) {
	root := t.TempDir()
	resolved, err := Resolve("docs/generated/contracts-bundle.json", Constraint{
		ArgName:     "--out",
		RepoRoot:    root,
		AllowedRoot: "docs/generated",
	})
	if err != nil {
		t.Fatalf("Failed to resolve output path: %v", err)
	}
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != filepath.Join(resolvedRoot, "docs", "generated", "contracts-bundle.json") {
		t.Errorf("Unexpected resolved path: %s", resolved)
	}
}

func TestResolveRejectsSymlinkedSubtreeEscapingRepo(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	// docs/generated physically lives outside the repository
	if err := os.Symlink(outside, filepath.Join(root, "docs", "generated")); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve("docs/generated/contracts-bundle.json", Constraint{
		ArgName:     "--out",
		RepoRoot:    root,
		AllowedRoot: "docs/generated",
	})
	if err == nil {
		t.Fatal("Expected error for symlinked subtree escaping the repository root")
	}
	if !strings.Contains(err.Error(), "escapes repository root") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestResolveRejectsSymlinkLeavingAllowedSubtree(t *testing.T) {
	root := t.TempDir()
	generated := filepath.Join(root, "docs", "generated")
	contracts := filepath.Join(root, "contracts")
	for _, dir := range []string{generated, contracts} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// A link inside the allowed subtree pointing elsewhere in the repo
	if err := os.Symlink(contracts, filepath.Join(generated, "escape")); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve("docs/generated/escape/contracts-bundle.json", Constraint{
		ArgName:     "--out",
		RepoRoot:    root,
		AllowedRoot: "docs/generated",
	})
	if err == nil {
		t.Fatal("Expected error for symlink leaving the allowed subtree")
	}
	if !strings.Contains(err.Error(), "must stay under docs/generated") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
