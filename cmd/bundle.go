/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jaeyoung0509/Meld/internal/bundler"
	"github.com/jaeyoung0509/Meld/internal/models"
	"github.com/jaeyoung0509/Meld/internal/pathsafe"
)

const (
	defaultRestOpenAPI = "docs/generated/rest-openapi.json"
	defaultGrpcBridge  = "docs/generated/grpc-openapi-bridge.json"
	defaultLinks       = "contracts/links.toml"
	defaultOut         = "docs/generated/contracts-bundle.json"

	generatedRoot = "docs/generated"
	contractsRoot = "contracts"
)

var (
	restOpenAPIPath string
	grpcBridgePath  string
	linksPath       string
	outPath         string
	repoRoot        string
	builtinTOML     bool
	verbose         bool

	// Color helpers
	cyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	white = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// bundleCmd represents the bundle command
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Generate the validated REST+gRPC contract bundle",
	Long: `Reconcile the REST OpenAPI document and the gRPC bridge document against
contracts/links.toml and write the merged contract bundle.

All input and output paths must stay inside the repository: the OpenAPI
documents and the bundle under docs/generated, the mapping file under
contracts. Every validation problem in a run is reported, not just the first.

Exit codes:
  0  bundle written
  1  one or more validation errors (printed one per line to stderr)
  2  malformed or unsafe path argument

Examples:
  # Default repository layout
  contracts bundle

  # Explicit inputs
  contracts bundle --rest-openapi docs/generated/rest-openapi.json \
    --links contracts/links.toml --out docs/generated/contracts-bundle.json

  # Without the TOML library's grammar (restricted dialect only)
  contracts bundle --builtin-toml-parser`,
	Run: runBundle,
}

func runBundle(cmd *cobra.Command, args []string) {
	if code := executeBundle(cmd, true); code != 0 {
		os.Exit(code)
	}
}

// executeBundle runs the pipeline and returns the process exit code:
// 0 success, 1 validation or write failure, 2 unsafe path argument. Split
// from the cobra Run hook so the code mapping stays testable.
func executeBundle(cmd *cobra.Command, write bool) int {
	paths, ok := resolvePaths(cmd, write)
	if !ok {
		return 2
	}

	b, errs, err := bundler.Run(*paths, bundler.Options{FallbackTOML: builtinTOML}, write)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if len(errs) > 0 {
		printErrors(errs)
		return 1
	}

	if write {
		fmt.Printf("%s %s\n", green("✓"), "contract bundle written to "+cyan(paths.Out))
	} else {
		fmt.Printf("%s contracts are in sync\n", green("✓"))
	}
	displayBundleSummary(b)
	return 0
}

// resolvePaths applies config-file defaults and sanitizes the four path
// arguments. On failure the offending message has been printed and the
// caller must exit with code 2. withOut skips the output path for dry runs.
func resolvePaths(cmd *cobra.Command, withOut bool) (*bundler.Paths, bool) {
	root, err := filepath.Abs(configured(cmd, "repo-root", "repo_root", repoRoot))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot resolve --repo-root: %v\n", err)
		return nil, false
	}

	type arg struct {
		flag        string
		viperKey    string
		value       string
		allowedRoot string
		mustExist   bool
		target      *string
	}
	paths := bundler.Paths{RepoRoot: root}
	specs := []arg{
		{"rest-openapi", "paths.rest_openapi", restOpenAPIPath, generatedRoot, true, &paths.RestOpenAPI},
		{"grpc-bridge", "paths.grpc_bridge", grpcBridgePath, generatedRoot, true, &paths.GrpcBridge},
		{"links", "paths.links", linksPath, contractsRoot, true, &paths.Links},
	}
	if withOut {
		specs = append(specs, arg{"out", "paths.out", outPath, generatedRoot, false, &paths.Out})
	}

	for _, a := range specs {
		resolved, err := pathsafe.Resolve(configured(cmd, a.flag, a.viperKey, a.value), pathsafe.Constraint{
			ArgName:     "--" + a.flag,
			RepoRoot:    root,
			AllowedRoot: a.allowedRoot,
			MustExist:   a.mustExist,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return nil, false
		}
		*a.target = resolved
	}
	return &paths, true
}

// configured resolves one setting with flag > config file > built-in default
// precedence.
func configured(cmd *cobra.Command, flagName, viperKey, current string) string {
	if cmd.Flags().Changed(flagName) {
		return current
	}
	if viper.IsSet(viperKey) {
		return viper.GetString(viperKey)
	}
	return current
}

func printErrors(errs []string) {
	for _, msg := range errs {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
}

func displayBundleSummary(b *models.Bundle) {
	fmt.Printf("\n%s\n", white("=== Contract Bundle ==="))
	fmt.Printf("REST operations: %d\n", b.Rest.OperationCount)
	fmt.Printf("gRPC methods:    %d\n", b.Grpc.MethodCount)
	fmt.Printf("Links:           %d\n", len(b.Links))
	exempted := len(b.Coverage.AllowUnmappedRestOperationIDs) + len(b.Coverage.AllowUnmappedGrpcMethods)
	if exempted > 0 {
		fmt.Printf("Exempted:        %d\n", exempted)
	}

	if verbose {
		fmt.Println()
		for _, link := range b.Links {
			fmt.Printf("%s %s %s %s %s\n",
				link.RestMethod, link.RestPath, cyan("↔"), link.GrpcMethod, link.GrpcPath)
			if link.Notes != "" {
				fmt.Printf("  Notes: %s\n", link.Notes)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(bundleCmd)

	bundleCmd.Flags().StringVar(&restOpenAPIPath, "rest-openapi", defaultRestOpenAPI, "Path to REST OpenAPI JSON")
	bundleCmd.Flags().StringVar(&grpcBridgePath, "grpc-bridge", defaultGrpcBridge, "Path to gRPC OpenAPI bridge JSON")
	bundleCmd.Flags().StringVar(&linksPath, "links", defaultLinks, "Path to explicit mapping file")
	bundleCmd.Flags().StringVar(&outPath, "out", defaultOut, "Output path for generated bundle JSON")
	bundleCmd.Flags().StringVar(&repoRoot, "repo-root", ".", "Repository root all paths are resolved against")
	bundleCmd.Flags().BoolVar(&builtinTOML, "builtin-toml-parser", false, "Parse the mapping file with the built-in restricted TOML parser")
	bundleCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
}
