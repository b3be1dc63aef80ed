/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate contract coverage without writing the bundle",
	Long: `Run the full reconciliation pipeline and report every validation problem,
but never touch the output path. Intended for CI gates and pre-commit hooks
where only the pass/fail signal matters.

Exit codes match the bundle command: 0 in sync, 1 validation errors,
2 malformed or unsafe path argument.`,
	Run: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	if code := executeBundle(cmd, false); code != 0 {
		os.Exit(code)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&restOpenAPIPath, "rest-openapi", defaultRestOpenAPI, "Path to REST OpenAPI JSON")
	checkCmd.Flags().StringVar(&grpcBridgePath, "grpc-bridge", defaultGrpcBridge, "Path to gRPC OpenAPI bridge JSON")
	checkCmd.Flags().StringVar(&linksPath, "links", defaultLinks, "Path to explicit mapping file")
	checkCmd.Flags().StringVar(&repoRoot, "repo-root", ".", "Repository root all paths are resolved against")
	checkCmd.Flags().BoolVar(&builtinTOML, "builtin-toml-parser", false, "Parse the mapping file with the built-in restricted TOML parser")
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
}
