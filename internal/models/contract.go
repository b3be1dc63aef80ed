package models

// Contract record types shared by the extractors, the reconciliation engine
// and the bundle writer. JSON tags are declared in alphabetical order so the
// serialized bundle comes out key-sorted without any custom encoding.

// RestOperation is a single REST endpoint+method pair extracted from the
// REST OpenAPI document. Identity key is OperationID.
type RestOperation struct {
	Method      string  `json:"method"`
	OperationID string  `json:"operation_id"`
	Path        string  `json:"path"`
	Summary     *string `json:"summary"`
}

// GrpcMethod is a gRPC service method exposed through the OpenAPI bridge
// document. Identity key is GrpcMethod ("package.Service/Method").
type GrpcMethod struct {
	GrpcMethod        string  `json:"grpc_method"`
	HTTPMethod        string  `json:"http_method"`
	Path              string  `json:"path"`
	RequestSchemaRef  *string `json:"request_schema_ref"`
	ResponseSchemaRef *string `json:"response_schema_ref"`
	Summary           *string `json:"summary"`
}

// Link is a validated pairing between one REST operation and one gRPC
// method. Links are only ever built from a declared mapping entry after both
// sides resolved against the extracted collections.
type Link struct {
	GrpcHTTPMethod  string `json:"grpc_http_method"`
	GrpcMethod      string `json:"grpc_method"`
	GrpcPath        string `json:"grpc_path"`
	Notes           string `json:"notes,omitempty"`
	RestMethod      string `json:"rest_method"`
	RestOperationID string `json:"rest_operation_id"`
	RestPath        string `json:"rest_path"`
}

// Coverage records the declared exemptions alongside the computed unmapped
// identifier sets. In a written bundle the unmapped lists are empty by
// construction.
type Coverage struct {
	AllowUnmappedGrpcMethods      []string `json:"allow_unmapped_grpc_methods"`
	AllowUnmappedRestOperationIDs []string `json:"allow_unmapped_rest_operation_ids"`
	UnmappedGrpcMethods           []string `json:"unmapped_grpc_methods"`
	UnmappedRestOperationIDs      []string `json:"unmapped_rest_operation_ids"`
}

// Sources identifies the input documents a bundle was generated from, as
// repository-relative slash paths.
type Sources struct {
	GrpcOpenAPIBridge string `json:"grpc_openapi_bridge"`
	LinksTOML         string `json:"links_toml"`
	RestOpenAPI       string `json:"rest_openapi"`
}

// RestBlock groups the extracted REST operations with their count.
type RestBlock struct {
	OperationCount int             `json:"operation_count"`
	Operations     []RestOperation `json:"operations"`
}

// GrpcBlock groups the extracted gRPC methods with their count.
type GrpcBlock struct {
	MethodCount int          `json:"method_count"`
	Methods     []GrpcMethod `json:"methods"`
}

// Bundle is the terminal artifact: the merged, validated contract view.
type Bundle struct {
	Coverage Coverage  `json:"coverage"`
	Grpc     GrpcBlock `json:"grpc"`
	Links    []Link    `json:"links"`
	Rest     RestBlock `json:"rest"`
	Sources  Sources   `json:"sources"`
	Version  int       `json:"version"`
}
