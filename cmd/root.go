/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contracts",
	Short: "REST/gRPC contract reconciliation and bundling",
	Long: `contracts reconciles a REST OpenAPI document and a gRPC-to-OpenAPI bridge
document against the explicit mapping file (contracts/links.toml) and emits a
single validated contract bundle.

Every REST operation and every gRPC method must either be linked to its
counterpart or declared exempt; anything else fails the run, which makes the
tool usable as a CI gate against contract drift.`,
}

func Execute() {
	cobra.OnInitialize(func() {
		viper.SetConfigName("contracts")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			// The config file is optional; CI checkouts usually run on
			// flags and built-in defaults alone.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				os.Exit(1)
			}
		}
	})
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
