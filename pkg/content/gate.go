package content

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables read by LoadGate.
const (
	EnvServiceDomain = "MICROCMS_SERVICE_DOMAIN"
	EnvAPIKey        = "MICROCMS_API_KEY"
)

// Gate holds the CMS credentials as read once at startup. A Gate is
// available iff both credentials are non-blank; the result never changes.
// Values are trimmed, so a whitespace-only variable counts as unset even
// though it is present in the environment.
type Gate struct {
	serviceDomain string
	apiKey        string
}

// NewGate builds a gate from explicit credentials. Empty and whitespace-only
// values count as missing.
func NewGate(serviceDomain, apiKey string) Gate {
	return Gate{
		serviceDomain: strings.TrimSpace(serviceDomain),
		apiKey:        strings.TrimSpace(apiKey),
	}
}

// LoadGate reads MICROCMS_SERVICE_DOMAIN and MICROCMS_API_KEY. Values set in
// the process environment win over values from envFiles; among the files a
// later one overrides an earlier one. Missing files are skipped. The process
// environment is not modified.
func LoadGate(envFiles ...string) (Gate, error) {
	fileValues := map[string]string{}

	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return Gate{}, fmt.Errorf("reading env file %s: %w", file, err)
		}

		for key, value := range values {
			fileValues[key] = value
		}
	}

	v := viper.New()

	for _, name := range []string{EnvServiceDomain, EnvAPIKey} {
		key := strings.ToLower(name)

		err := v.BindEnv(key, name)
		if err != nil {
			return Gate{}, fmt.Errorf("binding %s: %w", name, err)
		}

		if value, ok := fileValues[name]; ok {
			v.SetDefault(key, value)
		}
	}

	return NewGate(
		v.GetString(strings.ToLower(EnvServiceDomain)),
		v.GetString(strings.ToLower(EnvAPIKey)),
	), nil
}

// Available reports whether both credentials are present.
func (g Gate) Available() bool {
	return g.serviceDomain != "" && g.apiKey != ""
}

// ServiceDomain returns the configured service domain.
func (g Gate) ServiceDomain() string {
	return g.serviceDomain
}

// APIKey returns the configured API key.
func (g Gate) APIKey() string {
	return g.apiKey
}

// Missing lists the names of the environment variables that were not set.
func (g Gate) Missing() []string {
	var missing []string

	if g.serviceDomain == "" {
		missing = append(missing, EnvServiceDomain)
	}

	if g.apiKey == "" {
		missing = append(missing, EnvAPIKey)
	}

	return missing
}

// String describes the gate without revealing the API key.
func (g Gate) String() string {
	if !g.Available() {
		return fmt.Sprintf("unavailable (missing %s)", strings.Join(g.Missing(), ", "))
	}

	return "available (" + g.serviceDomain + ")"
}
