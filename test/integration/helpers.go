//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ServiceDomain string
	APIKey        string
	NewsID        string
	CategoryID    string
	CmsPath       string
	Verbose       bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServiceDomain: os.Getenv("MICROCMS_SERVICE_DOMAIN"),
		APIKey:        os.Getenv("MICROCMS_API_KEY"),
		NewsID:        os.Getenv("CMS_TEST_NEWS_ID"),
		CategoryID:    os.Getenv("CMS_TEST_CATEGORY_ID"),
		CmsPath:       getCmsPath(),
		Verbose:       os.Getenv("CMS_VERBOSE") == "true",
	}
}

// getCmsPath determines the path to the cms binary
func getCmsPath() string {
	if path := os.Getenv("CMS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../cms",
		"./cms",
		"../cms",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "cms"
}

// SkipIfMissingBinary skips the test when the cms binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.CmsPath); err != nil {
		if _, statErr := os.Stat(config.CmsPath); statErr != nil {
			t.Skipf("cms binary not found at %s, skipping integration test", config.CmsPath)
		}
	}
}

// SkipIfMissingCredentials skips the test unless a real CMS is configured.
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()
	config.SkipIfMissingBinary(t)

	if config.ServiceDomain == "" || config.APIKey == "" {
		t.Skip("MICROCMS_SERVICE_DOMAIN or MICROCMS_API_KEY not set, skipping integration test")
	}
}

// CommandRunner provides utilities for running cms commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
	env    []string
}

// NewCommandRunner creates a runner that passes the CMS credentials through.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
		env: append(os.Environ(),
			"MICROCMS_SERVICE_DOMAIN="+config.ServiceDomain,
			"MICROCMS_API_KEY="+config.APIKey,
		),
	}
}

// NewUnconfiguredRunner creates a runner whose environment has no CMS
// credentials and whose env files do not exist.
func NewUnconfiguredRunner(config *TestConfig, t *testing.T) *CommandRunner {
	env := []string{"MICROCMS_SERVICE_DOMAIN=", "MICROCMS_API_KEY="}

	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "MICROCMS_") {
			env = append(env, kv)
		}
	}

	return &CommandRunner{config: config, t: t, env: env}
}

// Run executes a cms command in an empty directory and returns its output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--cache", "none", "--env-file", runner.t.TempDir() + "/.env"}, args...)

	cmd := exec.Command(runner.config.CmsPath, args...)
	cmd.Env = runner.env

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CmsPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Start launches a long-running cms command such as serve.
func (runner *CommandRunner) Start(args ...string) (*exec.Cmd, error) {
	args = append([]string{"--cache", "none", "--env-file", runner.t.TempDir() + "/.env"}, args...)

	cmd := exec.Command(runner.config.CmsPath, args...)
	cmd.Env = runner.env

	if runner.config.Verbose {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting cms: %w", err)
	}

	runner.t.Cleanup(func() {
		_ = cmd.Process.Signal(os.Interrupt)
		_ = cmd.Wait()
	})

	return cmd, nil
}

// FreeAddr returns a loopback address with a free port.
func FreeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("finding free port: %v", err)
	}

	addr := listener.Addr().String()
	_ = listener.Close()

	return addr
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}
