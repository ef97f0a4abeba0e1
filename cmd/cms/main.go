package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/cms-content/cmd/cms/commands"
	"github.com/fivetwenty-io/cms-content/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cms",
	Short: "Headless CMS content CLI",
	Long: `A command-line interface for reading members, news and categories
from a hosted headless CMS.

Credentials come from MICROCMS_SERVICE_DOMAIN and MICROCMS_API_KEY (or .env
files). Without them every list prints an empty result and detail lookups
fail with "unavailable without configuration".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.cms/config.yml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml); default table on a terminal, json otherwise")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every CMS request")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env", ".env.local"}, "env files read for CMS credentials, later files win")
	rootCmd.PersistentFlags().String("base-url", "", "override the CMS API base URL")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "timeout for a single CMS request")
	rootCmd.PersistentFlags().Duration("page-interval", constants.DefaultPageInterval, "pause between pages when fetching everything")
	rootCmd.PersistentFlags().String("cache", "memory", "response cache backend (memory, nats, redis, memory+nats, memory+redis, none)")
	rootCmd.PersistentFlags().String("nats-url", "nats://127.0.0.1:4222", "NATS server URL for the nats cache")
	rootCmd.PersistentFlags().StringToString("header", nil, "extra header sent with every CMS request, as name=value (repeatable)")
	rootCmd.PersistentFlags().String("redis-url", "redis://127.0.0.1:6379/0", "Redis URL for the redis cache")

	// Bind flags to viper
	for _, name := range []string{
		"config", "output", "verbose", "log-level", "env-file", "base-url",
		"timeout", "page-interval", "cache", "nats-url", "redis-url", "header",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewMembersCommand())
	rootCmd.AddCommand(commands.NewNewsCommand())
	rootCmd.AddCommand(commands.NewCategoriesCommand())
	rootCmd.AddCommand(commands.NewStatusCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			configDir := filepath.Join(home, ".cms")
			if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
			}

			// Search config in ~/.cms/config.yml
			viper.AddConfigPath(configDir)
		}

		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("CMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
