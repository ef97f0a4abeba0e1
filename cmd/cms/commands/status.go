package commands

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StatusInfo describes the CMS configuration as seen by the CLI.
type StatusInfo struct {
	Available     bool     `json:"cms_available"            yaml:"cms_available"`
	ServiceDomain string   `json:"service_domain,omitempty" yaml:"service_domain,omitempty"`
	Missing       []string `json:"missing,omitempty"        yaml:"missing,omitempty"`
	Cache         string   `json:"cache"                    yaml:"cache"`
	EnvFiles      []string `json:"env_files"                yaml:"env_files"`
}

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show CMS configuration status",
		Long:  "Report whether CMS credentials were found. The API key itself is never shown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			info := StatusInfo{
				Available:     rt.service.Available(),
				ServiceDomain: rt.gate.ServiceDomain(),
				Missing:       rt.gate.Missing(),
				Cache:         viper.GetString("cache"),
				EnvFiles:      viper.GetStringSlice("env-file"),
			}

			return writeOutput(cmd.OutOrStdout(), info, func(table *tablewriter.Table) {
				available := "no"
				if info.Available {
					available = "yes"
				}

				table.Header("Property", "Value")
				_ = table.Append("CMS available", available)
				_ = table.Append("Service domain", orNA(info.ServiceDomain))
				_ = table.Append("Missing", orNA(strings.Join(info.Missing, ", ")))
				_ = table.Append("Cache", orNA(cases.Title(language.English).String(info.Cache)))
				_ = table.Append("Env files", orNA(strings.Join(info.EnvFiles, ", ")))
			})
		},
	}
}
