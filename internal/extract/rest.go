package extract

import (
	"sort"
	"strings"

	"github.com/jaeyoung0509/Meld/internal/errlist"
	"github.com/jaeyoung0509/Meld/internal/models"
)

var httpMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"patch":   {},
	"options": {},
	"head":    {},
	"trace":   {},
}

// RestOperations normalizes the paths object of a REST OpenAPI document into
// a list of operation records sorted by operation id. Structural problems
// are recorded on errs and the offending entry is skipped; extraction always
// returns the valid remainder.
func RestOperations(doc map[string]any, errs *errlist.List) []models.RestOperation {
	operations := []models.RestOperation{}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		errs.Add("REST OpenAPI is missing object field: paths")
		return operations
	}

	seen := map[string]bool{}
	for _, pathKey := range sortedKeys(paths) {
		pathItem, ok := paths[pathKey].(map[string]any)
		if !ok {
			errs.Addf("REST path item must be an object: %s", pathKey)
			continue
		}

		for _, methodKey := range sortedKeys(pathItem) {
			if _, known := httpMethods[strings.ToLower(methodKey)]; !known {
				continue
			}
			operation, ok := pathItem[methodKey].(map[string]any)
			if !ok {
				errs.Addf("REST operation must be an object: %s %s", strings.ToUpper(methodKey), pathKey)
				continue
			}
			operationID, _ := operation["operationId"].(string)
			if operationID == "" {
				errs.Addf("REST operation is missing operationId: %s %s", strings.ToUpper(methodKey), pathKey)
				continue
			}
			// The lookup map downstream is keyed by operationId, so a
			// collision would silently shadow the earlier record.
			if seen[operationID] {
				errs.Addf("REST OpenAPI declares duplicate operationId: %s (%s %s)", operationID, strings.ToUpper(methodKey), pathKey)
				continue
			}
			seen[operationID] = true

			operations = append(operations, models.RestOperation{
				Method:      strings.ToUpper(methodKey),
				OperationID: operationID,
				Path:        pathKey,
				Summary:     optionalString(operation["summary"]),
			})
		}
	}

	sort.Slice(operations, func(i, j int) bool {
		return operations[i].OperationID < operations[j].OperationID
	})
	return operations
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
