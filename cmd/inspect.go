/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaeyoung0509/Meld/internal/models"
	"github.com/jaeyoung0509/Meld/internal/parser"
)

var inspectFilter string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [openapi-spec-file]",
	Short: "List the operations of an OpenAPI document",
	Long: `Parse a single OpenAPI document and print its operations (method, path,
operationId). Useful when authoring contracts/links.toml: the printed
operation ids are exactly the identifiers the mapping file must reference.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		specFile := args[0]

		// Parse OpenAPI spec
		p, err := parser.ParseFile(specFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing OpenAPI file: %v\n", err)
			os.Exit(1)
		}

		operations, err := p.GetOperations()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting operations: %v\n", err)
			os.Exit(1)
		}

		filteredOps := filterOperations(operations, inspectFilter)
		if len(filteredOps) == 0 {
			fmt.Println("No operations found matching the criteria")
			os.Exit(0)
		}

		displayOperations(filteredOps, verbose)
	},
}

func filterOperations(operations []models.Operation, filterStr string) []models.Operation {
	if filterStr == "" {
		return operations
	}

	var filtered []models.Operation
	for _, op := range operations {
		// Filter by path pattern or operation ID
		if !strings.Contains(op.Path, filterStr) && !strings.Contains(op.OperationID, filterStr) {
			continue
		}
		filtered = append(filtered, op)
	}
	return filtered
}

func displayOperations(operations []models.Operation, verbose bool) {
	fmt.Printf("%-8s %-40s %s\n", "METHOD", "PATH", "OPERATION ID")
	fmt.Println(strings.Repeat("-", 90))

	for _, op := range operations {
		operationID := op.OperationID
		if operationID == "" {
			operationID = "(none)"
		}
		fmt.Printf("%-8s %-40s %s\n", op.Method, op.Path, operationID)

		if verbose {
			if op.Summary != "" {
				fmt.Printf("  Summary: %s\n", op.Summary)
			}
			if len(op.Tags) > 0 {
				fmt.Printf("  Tags: %s\n", strings.Join(op.Tags, ", "))
			}
		}
	}
	fmt.Printf("\nTotal: %d operations\n", len(operations))
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectFilter, "filter", "", "Filter operations by path pattern or operation ID")
	inspectCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
}
