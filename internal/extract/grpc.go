package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jaeyoung0509/Meld/internal/errlist"
	"github.com/jaeyoung0509/Meld/internal/models"
)

const (
	grpcContentType = "application/grpc+proto"
	grpcMetadataKey = "x-meld-grpc"
)

// GrpcMethods normalizes the paths object of a gRPC-bridge OpenAPI document
// into a list of method records sorted by grpc method. The bridge convention
// exposes every method as HTTP POST under /package.Service/Method, so the
// method identifier is derived from the path key, not from metadata.
func GrpcMethods(doc map[string]any, errs *errlist.List) []models.GrpcMethod {
	methods := []models.GrpcMethod{}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		errs.Add("gRPC bridge OpenAPI is missing object field: paths")
		return methods
	}

	seen := map[string]bool{}
	for _, pathKey := range sortedKeys(paths) {
		pathItem, ok := paths[pathKey].(map[string]any)
		if !ok {
			errs.Addf("gRPC bridge path item must be an object: %s", pathKey)
			continue
		}

		post, ok := pathItem["post"].(map[string]any)
		if !ok {
			errs.Addf("gRPC bridge path must define post operation: %s", pathKey)
			continue
		}

		grpcMethod := strings.TrimPrefix(pathKey, "/")
		if seen[grpcMethod] {
			errs.Addf("gRPC bridge declares duplicate method: %s (%s)", grpcMethod, pathKey)
			continue
		}
		seen[grpcMethod] = true

		// Embedded metadata is optional, but when all three fields are
		// present the reconstructed identifier must agree with the path.
		// The method is still extracted; the run ends in error.
		if metadata, ok := post[grpcMetadataKey].(map[string]any); ok {
			pkg, pok := metadata["package"].(string)
			service, sok := metadata["service"].(string)
			method, mok := metadata["method"].(string)
			if pok && sok && mok {
				fromMetadata := fmt.Sprintf("%s.%s/%s", pkg, service, method)
				if fromMetadata != grpcMethod {
					errs.Addf("gRPC bridge method mismatch between path and %s metadata: path=%s, metadata=%s",
						grpcMetadataKey, grpcMethod, fromMetadata)
				}
			}
		}

		methods = append(methods, models.GrpcMethod{
			GrpcMethod:        grpcMethod,
			HTTPMethod:        "POST",
			Path:              pathKey,
			RequestSchemaRef:  refAt(post, "requestBody", "content", grpcContentType, "schema"),
			ResponseSchemaRef: refAt(post, "responses", "200", "content", grpcContentType, "schema"),
			Summary:           optionalString(post["summary"]),
		})
	}

	sort.Slice(methods, func(i, j int) bool {
		return methods[i].GrpcMethod < methods[j].GrpcMethod
	})
	return methods
}

// refAt walks nested objects along keys and returns the $ref string of the
// final object. Schema refs are optional annotations: any missing or
// mistyped step yields nil, never an error.
func refAt(m map[string]any, keys ...string) *string {
	cur := m
	for _, key := range keys {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	ref, ok := cur["$ref"].(string)
	if !ok {
		return nil
	}
	return &ref
}
