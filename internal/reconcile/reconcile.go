package reconcile

import (
	"sort"
	"strings"

	"github.com/jaeyoung0509/Meld/internal/errlist"
	"github.com/jaeyoung0509/Meld/internal/mapping"
	"github.com/jaeyoung0509/Meld/internal/models"
)

// Result is the normalized outcome of cross-validating the extracted
// contracts against the declared mapping. The unmapped lists are the
// identifiers neither linked nor exempted; any non-empty unmapped list also
// produced an aggregated error on the run's error list.
type Result struct {
	Links             []models.Link
	AllowUnmappedRest []string
	AllowUnmappedGrpc []string
	UnmappedRest      []string
	UnmappedGrpc      []string
}

// Reconcile walks the declared links and coverage exemptions, validating
// every identifier against the extracted collections. Business problems are
// recorded on errs and never abort the walk, so one run reports the complete
// defect set.
func Reconcile(operations []models.RestOperation, methods []models.GrpcMethod, raw mapping.Raw, errs *errlist.List) Result {
	restByID := make(map[string]models.RestOperation, len(operations))
	for _, op := range operations {
		restByID[op.OperationID] = op
	}
	grpcByMethod := make(map[string]models.GrpcMethod, len(methods))
	for _, m := range methods {
		grpcByMethod[m.GrpcMethod] = m
	}

	allowRest := sortedStringSet(raw.Coverage["allow_unmapped_rest_operation_ids"],
		"coverage.allow_unmapped_rest_operation_ids", errs)
	allowGrpc := sortedStringSet(raw.Coverage["allow_unmapped_grpc_methods"],
		"coverage.allow_unmapped_grpc_methods", errs)

	for _, operationID := range allowRest {
		if _, ok := restByID[operationID]; !ok {
			errs.Addf("coverage.allow_unmapped_rest_operation_ids contains unknown operationId: %s", operationID)
		}
	}
	for _, grpcMethod := range allowGrpc {
		if _, ok := grpcByMethod[grpcMethod]; !ok {
			errs.Addf("coverage.allow_unmapped_grpc_methods contains unknown method: %s", grpcMethod)
		}
	}

	links := []models.Link{}
	seenRest := map[string]bool{}
	seenGrpc := map[string]bool{}

	for index, entry := range raw.Links {
		// Non-table entries and missing identifiers were already reported
		// by the mapping parser; skip them silently here.
		table, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		operationID, ok := table["rest_operation_id"].(string)
		if !ok {
			continue
		}
		grpcMethod, ok := table["grpc_method"].(string)
		if !ok {
			continue
		}

		if seenRest[operationID] {
			errs.Addf("duplicate rest_operation_id mapping: %s", operationID)
			continue
		}
		if seenGrpc[grpcMethod] {
			errs.Addf("duplicate grpc_method mapping: %s", grpcMethod)
			continue
		}
		seenRest[operationID] = true
		seenGrpc[grpcMethod] = true

		restOperation, ok := restByID[operationID]
		if !ok {
			errs.Addf("links[%d] references unknown rest_operation_id: %s", index, operationID)
			continue
		}
		grpcOperation, ok := grpcByMethod[grpcMethod]
		if !ok {
			errs.Addf("links[%d] references unknown grpc_method: %s", index, grpcMethod)
			continue
		}

		// Declared method/path are optional cross-checks against the
		// extracted facts; they catch stale hand-written mappings.
		if declared, present := table["rest_method"]; present {
			s, ok := declared.(string)
			if !ok || strings.ToUpper(s) != restOperation.Method {
				errs.Addf("links[%d] rest_method mismatch for %s: expected %s", index, operationID, restOperation.Method)
			}
		}
		if declared, present := table["rest_path"]; present {
			s, ok := declared.(string)
			if !ok || s != restOperation.Path {
				errs.Addf("links[%d] rest_path mismatch for %s: expected %s", index, operationID, restOperation.Path)
			}
		}

		link := models.Link{
			GrpcHTTPMethod:  grpcOperation.HTTPMethod,
			GrpcMethod:      grpcMethod,
			GrpcPath:        grpcOperation.Path,
			RestMethod:      restOperation.Method,
			RestOperationID: operationID,
			RestPath:        restOperation.Path,
		}
		if notes, ok := table["notes"].(string); ok && notes != "" {
			link.Notes = notes
		}
		links = append(links, link)
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].RestOperationID < links[j].RestOperationID
	})

	linkedRest := map[string]bool{}
	linkedGrpc := map[string]bool{}
	for _, link := range links {
		linkedRest[link.RestOperationID] = true
		linkedGrpc[link.GrpcMethod] = true
	}
	allowedRest := toSet(allowRest)
	allowedGrpc := toSet(allowGrpc)

	unmappedRest := []string{}
	for operationID := range restByID {
		if !linkedRest[operationID] && !allowedRest[operationID] {
			unmappedRest = append(unmappedRest, operationID)
		}
	}
	sort.Strings(unmappedRest)

	unmappedGrpc := []string{}
	for grpcMethod := range grpcByMethod {
		if !linkedGrpc[grpcMethod] && !allowedGrpc[grpcMethod] {
			unmappedGrpc = append(unmappedGrpc, grpcMethod)
		}
	}
	sort.Strings(unmappedGrpc)

	// One aggregated error per category keeps CI output scannable.
	if len(unmappedRest) > 0 {
		errs.Addf("missing REST mappings (add links or allow_unmapped_rest_operation_ids): %s",
			strings.Join(unmappedRest, ", "))
	}
	if len(unmappedGrpc) > 0 {
		errs.Addf("missing gRPC mappings (add links or allow_unmapped_grpc_methods): %s",
			strings.Join(unmappedGrpc, ", "))
	}

	return Result{
		Links:             links,
		AllowUnmappedRest: allowRest,
		AllowUnmappedGrpc: allowGrpc,
		UnmappedRest:      unmappedRest,
		UnmappedGrpc:      unmappedGrpc,
	}
}

// sortedStringSet normalizes a coverage list into deduplicated, sorted,
// non-empty strings. Anything else is an error and coerces to empty.
func sortedStringSet(value any, fieldName string, errs *errlist.List) []string {
	if value == nil {
		return []string{}
	}
	items, ok := value.([]any)
	if !ok {
		errs.Addf("%s must be an array of non-empty strings", fieldName)
		return []string{}
	}

	set := map[string]bool{}
	for _, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			errs.Addf("%s must be an array of non-empty strings", fieldName)
			return []string{}
		}
		set[s] = true
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
