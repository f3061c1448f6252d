package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cineverse/internal/config"
)

func writeTestJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

// fakeTMDB serves fixed JSON bodies keyed by path and 404s everything else.
func fakeTMDB(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := routes[r.URL.Path]; ok {
			writeTestJSON(w, body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		writeTestJSON(w, map[string]any{"status_code": 34, "status_message": "not found"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeTestConfig points the CLI at upstream with sqlite storage in a temp dir.
func writeTestConfig(t *testing.T, upstream string, driver string) string {
	t.Helper()
	for _, env := range []string{config.EnvConfig, config.EnvToken, config.EnvBaseURL, config.EnvImageBaseURL} {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[tmdb]
base_url = %q
image_base_url = "https://img.test/t/p"
token = "test-token"

[storage]
driver = %q
path = %q

[log]
level = "debug"
file = %q
`, upstream, driver, filepath.Join(dir, "cineverse.db"), filepath.Join(dir, "cineverse.log"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the command tree to its default so that
// values do not leak between executions of the shared root command.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
