package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/jaeyoung0509/Meld/internal/models"
)

// Parser handles parsing OpenAPI specification files
type Parser struct {
	document libopenapi.Document
}

// ParseFile parses an OpenAPI specification file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}

	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	return &Parser{document: document}, nil
}

// GetOperations extracts all operations from the OpenAPI spec, sorted by
// path then method for stable display output
func (p *Parser) GetOperations() ([]models.Operation, error) {
	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	var operations []models.Operation
	paths := model.Model.Paths

	if paths == nil || paths.PathItems == nil {
		return operations, nil
	}

	// Iterate over ordered map
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		pathItem := pair.Key()
		pathItemValue := pair.Value()
		if pathItemValue == nil {
			continue
		}

		// Process each HTTP method
		methods := []struct {
			name string
			op   *v3.Operation
		}{
			{"GET", pathItemValue.Get},
			{"PUT", pathItemValue.Put},
			{"POST", pathItemValue.Post},
			{"DELETE", pathItemValue.Delete},
			{"PATCH", pathItemValue.Patch},
			{"OPTIONS", pathItemValue.Options},
			{"HEAD", pathItemValue.Head},
			{"TRACE", pathItemValue.Trace},
		}

		for _, m := range methods {
			if m.op == nil {
				continue
			}

			tags := []string{}
			if m.op.Tags != nil {
				tags = append(tags, m.op.Tags...)
			}

			operations = append(operations, models.Operation{
				Path:        pathItem,
				Method:      m.name,
				OperationID: m.op.OperationId,
				Summary:     m.op.Summary,
				Tags:        tags,
			})
		}
	}

	sort.Slice(operations, func(i, j int) bool {
		if operations[i].Path != operations[j].Path {
			return operations[i].Path < operations[j].Path
		}
		return operations[i].Method < operations[j].Method
	})

	return operations, nil
}
