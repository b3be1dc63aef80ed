package bundler

import (
	"path/filepath"

	"github.com/jaeyoung0509/Meld/internal/bundle"
	"github.com/jaeyoung0509/Meld/internal/document"
	"github.com/jaeyoung0509/Meld/internal/errlist"
	"github.com/jaeyoung0509/Meld/internal/extract"
	"github.com/jaeyoung0509/Meld/internal/mapping"
	"github.com/jaeyoung0509/Meld/internal/models"
	"github.com/jaeyoung0509/Meld/internal/reconcile"
)

// BundleVersion is the format version stamped into every written bundle.
const BundleVersion = 1

// Paths are the sanitized, absolute input/output locations for one run.
// RepoRoot anchors the repo-relative source paths recorded in the bundle.
type Paths struct {
	RestOpenAPI string
	GrpcBridge  string
	Links       string
	Out         string
	RepoRoot    string
}

// Options select pipeline variants.
type Options struct {
	// FallbackTOML parses the mapping file with the built-in restricted
	// dialect parser instead of the TOML library.
	FallbackTOML bool
}

// Run executes the whole reconciliation pipeline: load both contract
// documents, parse the mapping file, reconcile, and (when write is set)
// persist the bundle. Validation problems come back as the string list; a
// non-empty list means nothing was written. The error return is reserved
// for output I/O failures.
func Run(p Paths, opts Options, write bool) (*models.Bundle, []string, error) {
	errs := &errlist.List{}

	restOperations := []models.RestOperation{}
	if doc, err := document.Load(p.RestOpenAPI); err != nil {
		errs.Add(err.Error())
	} else {
		restOperations = extract.RestOperations(doc, errs)
	}

	grpcMethods := []models.GrpcMethod{}
	if doc, err := document.Load(p.GrpcBridge); err != nil {
		errs.Add(err.Error())
	} else {
		grpcMethods = extract.GrpcMethods(doc, errs)
	}

	var raw mapping.Raw
	if opts.FallbackTOML {
		raw = mapping.LoadFallback(p.Links, errs)
	} else {
		raw = mapping.Load(p.Links, errs)
	}

	result := reconcile.Reconcile(restOperations, grpcMethods, raw, errs)

	if !errs.Empty() {
		return nil, errs.Messages(), nil
	}

	b := models.Bundle{
		Coverage: models.Coverage{
			AllowUnmappedGrpcMethods:      result.AllowUnmappedGrpc,
			AllowUnmappedRestOperationIDs: result.AllowUnmappedRest,
			UnmappedGrpcMethods:           result.UnmappedGrpc,
			UnmappedRestOperationIDs:      result.UnmappedRest,
		},
		Grpc: models.GrpcBlock{
			MethodCount: len(grpcMethods),
			Methods:     grpcMethods,
		},
		Links: result.Links,
		Rest: models.RestBlock{
			OperationCount: len(restOperations),
			Operations:     restOperations,
		},
		Sources: models.Sources{
			GrpcOpenAPIBridge: repoRelative(p.RepoRoot, p.GrpcBridge),
			LinksTOML:         repoRelative(p.RepoRoot, p.Links),
			RestOpenAPI:       repoRelative(p.RepoRoot, p.RestOpenAPI),
		},
		Version: BundleVersion,
	}

	if write {
		if err := bundle.Write(p.Out, b); err != nil {
			return nil, nil, err
		}
	}
	return &b, nil, nil
}

func repoRelative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
