// Package cmd implements the CLI commands for phone-catalog-tracker.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/mhodgson/phone-catalog-tracker/internal/api/client"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "phone-catalog-tracker",
	Short: "Track smartphone listings from an online shop",
	Long: "phone-catalog-tracker crawls a paginated smartphone shop, normalizes " +
		"each listing into a structured catalog entry (model, version, colour, " +
		"capacity, availability, delivery date), deduplicates the results, and " +
		"serves them over a JSON API.",
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		String("api-url", "http://localhost:8080", "API server URL for client commands")
	rootCmd.PersistentFlags().
		String("format", "table", "output format for client commands (table, json)")

	cobra.CheckErr(viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url")))
	cobra.CheckErr(viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format")))

	rootCmd.AddCommand(versionCommand())
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("api_url"))
}

func jsonOutput() bool {
	return viper.GetString("format") == "json"
}

func initViper() {
	viper.SetEnvPrefix("PCT")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
