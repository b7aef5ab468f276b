package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vburojevic/hfx/internal/config"
	"github.com/vburojevic/hfx/internal/output"
	"github.com/vburojevic/hfx/internal/provider"
)

// DoctorCmd checks endpoint reachability and local setup
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	hub := provider.NewHub(provider.HubOptions{Endpoint: cfg.Endpoint})

	var checks []checkResult
	checks = append(checks, c.checkEndpoint(ctx, hub))
	checks = append(checks, c.checkDataset(ctx, hub, cfg.Defaults.Dataset))
	checks = append(checks, c.checkConfig())
	checks = append(checks, c.checkOutputDir(cfg.Defaults.Output))

	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		if check.Status == "error" {
			errorCount++
		} else if check.Status == "warning" {
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return c.exitStatus(errorCount)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "hfx doctor")
	fmt.Fprintln(globals.Stdout, "==========")
	fmt.Fprintln(globals.Stdout)

	for _, check := range checks {
		var icon string
		switch check.Status {
		case "ok":
			icon = "✓"
		case "warning":
			icon = "⚠"
		case "error":
			icon = "✗"
		}

		fmt.Fprintf(globals.Stdout, "%s %s\n", icon, check.Name)
		if check.Message != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Message)
		}
		if check.Details != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Details)
		}
	}

	fmt.Fprintln(globals.Stdout)
	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}

	return c.exitStatus(errorCount)
}

// exitStatus turns failed checks into a non-zero exit. The report above is
// the user-facing output; the error only sets the process status.
func (c *DoctorCmd) exitStatus(errorCount int) error {
	if errorCount > 0 {
		return fmt.Errorf("%d check(s) failed", errorCount)
	}
	return nil
}

func (c *DoctorCmd) checkEndpoint(ctx context.Context, hub *provider.Hub) checkResult {
	if err := hub.Ping(ctx); err != nil {
		return checkResult{
			Name:    "Endpoint",
			Status:  "error",
			Message: fmt.Sprintf("%s is not reachable", hub.Endpoint()),
			Details: err.Error(),
		}
	}
	return checkResult{
		Name:    "Endpoint",
		Status:  "ok",
		Message: hub.Endpoint(),
	}
}

func (c *DoctorCmd) checkDataset(ctx context.Context, hub *provider.Hub, dataset string) checkResult {
	if dataset == "" {
		return checkResult{
			Name:    "Dataset",
			Status:  "warning",
			Message: "No default dataset configured",
			Details: "Set defaults.dataset in the config file or pass --dataset to export",
		}
	}
	infos, err := hub.Splits(ctx, dataset)
	if err != nil {
		return checkResult{
			Name:    "Dataset",
			Status:  "warning",
			Message: fmt.Sprintf("Could not list splits for %s", dataset),
			Details: err.Error(),
		}
	}
	return checkResult{
		Name:    "Dataset",
		Status:  "ok",
		Message: fmt.Sprintf("%s: %d split(s) available", dataset, len(infos)),
	}
}

func (c *DoctorCmd) checkConfig() checkResult {
	configPath := config.ConfigFile()
	if configPath == "" {
		return checkResult{
			Name:    "Config",
			Status:  "ok",
			Message: "Using defaults (no config file)",
			Details: "Create with: hfx config generate > ~/.hfx.yaml",
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}

	absPath, _ := filepath.Abs(configPath)
	return checkResult{
		Name:    "Config",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath),
		Details: fmt.Sprintf("Format: %s, Dataset: %s", cfg.Format, cfg.Defaults.Dataset),
	}
}

func (c *DoctorCmd) checkOutputDir(outputPath string) checkResult {
	dir := filepath.Dir(outputPath)
	if dir == "" {
		dir = "."
	}
	if !c.checkWritePermission(dir) {
		return checkResult{
			Name:    "Output directory",
			Status:  "error",
			Message: fmt.Sprintf("%s is not writable", dir),
			Details: "Exports will fail; pick another location with --output",
		}
	}
	absDir, _ := filepath.Abs(dir)
	return checkResult{
		Name:    "Output directory",
		Status:  "ok",
		Message: fmt.Sprintf("%s is writable", absDir),
	}
}

// checkWritePermission checks if we can write to a directory
func (c *DoctorCmd) checkWritePermission(dir string) bool {
	f, err := os.CreateTemp(dir, ".hfx_doctor_*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
