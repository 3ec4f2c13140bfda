package commands

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/internal/repository"
	"github.com/thoreinstein/strata/internal/stack/local"
)

func TestMain(m *testing.M) {
	// Plain output so assertions never chase ANSI escapes.
	color.NoColor = true
	os.Exit(m.Run())
}

// setupCLITest isolates the global configuration and repository scopes in
// temp directories and resets the singletons for the duration of the test.
func setupCLITest(t *testing.T) {
	t.Helper()

	t.Setenv(paths.ConfigPathEnvVar, t.TempDir())
	t.Chdir(t.TempDir())

	savedConfig := config.Reset()
	savedRepo := repository.Reset()
	t.Cleanup(func() {
		config.Restore(savedConfig)
		repository.Restore(savedRepo)
	})

	resetCommandFlags()
}

// resetCommandFlags returns all flag-bound package variables to their
// defaults, since cobra only overwrites the ones present on the command line.
func resetCommandFlags() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""

	profileCreateStoreType = "local"
	profileCreateStoreURL = ""
	profileListJSON = false
	profileSetGlobal = false

	stackListJSON = false
	stackSetGlobal = false
	stackRegisterOrchestrator = local.FlavorLocal
	stackRegisterOrchCommand = ""
	stackRegisterMetadata = local.FlavorSqlite
	stackRegisterDatabase = ""
	stackRegisterArtifact = local.FlavorLocal
	stackRegisterArtifactPath = ""
	stackRegisterRegistryURI = ""
}

// runCLI executes the root command with the given arguments and returns the
// combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetCommandFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-store-url", 10, "a-very-..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestScopeTags(t *testing.T) {
	if got := scopeTags(true, false); got != "global" {
		t.Errorf("scopeTags(true, false) = %q, want %q", got, "global")
	}
	if got := scopeTags(true, true); got != "global,local" {
		t.Errorf("scopeTags(true, true) = %q, want %q", got, "global,local")
	}
	if got := scopeTags(false, false); got != "" {
		t.Errorf("scopeTags(false, false) = %q, want empty", got)
	}
}

func TestOrNA(t *testing.T) {
	if got := orNA(""); got != "N/A" {
		t.Errorf("orNA(\"\") = %q, want N/A", got)
	}
	if got := orNA("mysql://db"); got != "mysql://db" {
		t.Errorf("orNA passthrough = %q", got)
	}
}
