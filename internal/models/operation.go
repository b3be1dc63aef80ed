package models

// Operation represents an OpenAPI operation as listed by the inspect command
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Tags        []string
}
