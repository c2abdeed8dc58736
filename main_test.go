package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const usageMessage = "USAGE:\n    gouvernante <command> [command options]"

func TestCLICommands(t *testing.T) {
	// Build the CLI binary for testing
	binaryPath := filepath.Join(t.TempDir(), "gouvernante-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build CLI binary: %v", err)
	}

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
		expectedError  string
	}{
		{
			name:          "no arguments shows usage",
			args:          []string{},
			expectedExit:  2,
			expectedError: usageMessage,
		},
		{
			name:          "unknown command shows usage",
			args:          []string{"unknown"},
			expectedExit:  2,
			expectedError: usageMessage,
		},
		{
			name:           "version command",
			args:           []string{"version"},
			expectedExit:   0,
			expectedOutput: "version=dev commit=unknown built_at=unknown",
		},
		{
			name:           "floors overview",
			args:           []string{"floors"},
			expectedExit:   0,
			expectedOutput: "floor",
		},
		{
			name:           "teams listing",
			args:           []string{"teams"},
			expectedExit:   0,
			expectedOutput: "mosaique",
		},
		{
			name:           "rooms listing with filter",
			args:           []string{"rooms", "-floor", "7", "-sort", "credits"},
			expectedExit:   0,
			expectedOutput: "705",
		},
		{
			name:           "rooms rejects bad sort key",
			args:           []string{"rooms", "-sort", "sideways"},
			expectedExit:   2,
			expectedError:  "unknown sort key",
		},
		{
			name:           "seeded assign prints the board",
			args:           []string{"assign", "-seed", "1"},
			expectedExit:   0,
			expectedOutput: "teams active=13 target=15.5-17 credits",
		},
		{
			name:          "assign rejects unknown team",
			args:          []string{"assign", "-teams", "ghost"},
			expectedExit:  1,
			expectedError: "unknown team",
		},
		{
			name:          "assign rejects positional arguments",
			args:          []string{"assign", "extra"},
			expectedExit:  2,
			expectedError: "unexpected arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			// Check exit code
			var exitCode int
			if err != nil {
				if exitError, ok := err.(*exec.ExitError); ok {
					exitCode = exitError.ExitCode()
				} else {
					t.Fatalf("Unexpected error type: %v", err)
				}
			}

			if exitCode != tt.expectedExit {
				t.Errorf("Expected exit code %d, got %d", tt.expectedExit, exitCode)
			}

			outputStr := strings.TrimSpace(string(output))

			if tt.expectedOutput != "" && !strings.Contains(outputStr, tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, outputStr)
			}

			if tt.expectedError != "" && !strings.Contains(outputStr, tt.expectedError) {
				t.Errorf("Expected error to contain %q, got %q", tt.expectedError, outputStr)
			}
		})
	}
}

func TestCLIAssignWritesArtifacts(t *testing.T) {
	binaryPath := filepath.Join(t.TempDir(), "gouvernante-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build CLI binary: %v", err)
	}

	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "board.xlsx")
	opsPath := filepath.Join(dir, "ops.log")

	run := exec.Command(binaryPath, "assign", "-seed", "1", "-xlsx", xlsxPath, "-ops", opsPath)
	if output, err := run.CombinedOutput(); err != nil {
		t.Fatalf("assign failed: %v\n%s", err, output)
	}

	if info, err := os.Stat(xlsxPath); err != nil || info.Size() == 0 {
		t.Fatalf("workbook not written: %v", err)
	}
	opsData, err := os.ReadFile(opsPath)
	if err != nil {
		t.Fatalf("operation log not written: %v", err)
	}
	if !strings.Contains(string(opsData), "op=assign.run") {
		t.Fatalf("operation log missing the run entry: %q", opsData)
	}
}
