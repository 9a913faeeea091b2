// Package doctor provides environment health checks for modkit.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"modkit/internal/modfile"
	"modkit/internal/pyenv"
)

// execCommand enables test stubbing.
var execCommand = exec.Command

// Doctor performs harness environment health checks
type Doctor struct {
	checks  []HealthCheck
	root    string
	verbose bool
}

// HealthCheck represents a single diagnostic check
type HealthCheck interface {
	Name() string
	Description() string
	Run() CheckResult
	CanAutoFix() bool
	Fix() error
	Severity() Severity
}

// CheckResult contains the outcome of a health check
type CheckResult struct {
	Status     Status
	Message    string
	Details    string
	FixCommand string
	Impact     string
}

// Status represents check status
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
	StatusCritical
)

// Severity indicates how important a fix is
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// HealthReport summarizes checks
type HealthReport struct {
	TotalChecks int
	Passed      int
	Warnings    int
	Errors      int
	Critical    int
	StartTime   time.Time
	EndTime     time.Time
}

// Run executes all checks and prints a concise report
func (d *Doctor) Run() HealthReport {
	d.checks = []HealthCheck{
		&InterpreterCheck{},
		&VenvCapabilityCheck{},
		&ModuleLayoutCheck{root: d.root},
		&ManifestCheck{root: d.root},
		&DistWritableCheck{root: d.root},
	}
	rpt := HealthReport{StartTime: time.Now()}
	fmt.Println("\n🩺 modkit doctor - Environment Health Check")
	fmt.Println(strings.Repeat("=", 52))
	for _, c := range d.checks {
		res := c.Run()
		d.printResult(res)
		rpt.TotalChecks++
		switch res.Status {
		case StatusOK:
			rpt.Passed++
		case StatusWarning:
			rpt.Warnings++
		case StatusError:
			rpt.Errors++
		case StatusCritical:
			rpt.Critical++
		}
	}
	rpt.EndTime = time.Now()
	fmt.Printf("\n⏱  Completed in %.2fs\n", rpt.EndTime.Sub(rpt.StartTime).Seconds())
	fmt.Printf("%d/%d checks passed\n", rpt.Passed, rpt.TotalChecks)
	fmt.Println("Run 'modkit doctor --fix' to auto-fix issues where possible")
	return rpt
}

func (d *Doctor) printResult(r CheckResult) {
	icon := "✅"
	switch r.Status {
	case StatusOK:
		// keep default icon
	case StatusWarning:
		icon = "⚠️ "
	case StatusError, StatusCritical:
		icon = "❌"
	}
	fmt.Printf("%s %s\n", icon, r.Message)
	if r.Details != "" && d.verbose {
		fmt.Printf("   %s\n", r.Details)
	}
	if r.FixCommand != "" && r.Status != StatusOK {
		fmt.Printf("   💡 Fix: %s\n", r.FixCommand)
	}
	if r.Impact != "" && r.Status == StatusCritical {
		fmt.Printf("   ⚠️  Impact: %s\n", r.Impact)
	}
}

// InterpreterCheck verifies a usable Python interpreter is reachable
type InterpreterCheck struct{}

func (c *InterpreterCheck) Name() string        { return "Interpreter" }
func (c *InterpreterCheck) Description() string { return "Checking for a Python interpreter" }
func (c *InterpreterCheck) CanAutoFix() bool    { return false }
func (c *InterpreterCheck) Fix() error          { return nil }
func (c *InterpreterCheck) Severity() Severity  { return SeverityCritical }

func (c *InterpreterCheck) Run() CheckResult {
	python, err := pyenv.FindInterpreter(nil)
	if err != nil {
		return CheckResult{
			Status:     StatusCritical,
			Message:    "No Python interpreter found",
			Details:    "modkit builds and launches modules through Python",
			FixCommand: "apt install python3 || brew install python3",
			Impact:     "modkit cannot build or launch the module",
		}
	}
	out, verr := execCommand(python, "--version").Output()
	if verr != nil {
		return CheckResult{
			Status:     StatusError,
			Message:    fmt.Sprintf("%s is not responding", python),
			Details:    "Interpreter found but --version failed",
			FixCommand: "set MODKIT_PYTHON to a working interpreter",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Using %s (%s)", python, strings.TrimSpace(string(out)))}
}

// VenvCapabilityCheck verifies the interpreter can create virtual environments
type VenvCapabilityCheck struct{}

func (c *VenvCapabilityCheck) Name() string        { return "Venv" }
func (c *VenvCapabilityCheck) Description() string { return "Checking venv support" }
func (c *VenvCapabilityCheck) CanAutoFix() bool    { return false }
func (c *VenvCapabilityCheck) Fix() error          { return nil }
func (c *VenvCapabilityCheck) Severity() Severity  { return SeverityHigh }

func (c *VenvCapabilityCheck) Run() CheckResult {
	python, err := pyenv.FindInterpreter(nil)
	if err != nil {
		return CheckResult{Status: StatusWarning, Message: "Venv check skipped (no interpreter)"}
	}
	if err := execCommand(python, "-c", "import venv, ensurepip").Run(); err != nil {
		return CheckResult{
			Status:     StatusError,
			Message:    "Interpreter cannot create virtual environments",
			Details:    "The venv or ensurepip module is missing",
			FixCommand: "apt install python3-venv",
			Impact:     "Release builds cannot provision the packaging toolchain",
		}
	}
	return CheckResult{Status: StatusOK, Message: "Virtual environment support available"}
}

// ModuleLayoutCheck verifies the fixed-name module artifacts exist
type ModuleLayoutCheck struct {
	root string
}

func (c *ModuleLayoutCheck) Name() string        { return "Layout" }
func (c *ModuleLayoutCheck) Description() string { return "Checking module layout" }
func (c *ModuleLayoutCheck) CanAutoFix() bool    { return false }
func (c *ModuleLayoutCheck) Fix() error          { return nil }
func (c *ModuleLayoutCheck) Severity() Severity  { return SeverityHigh }

func (c *ModuleLayoutCheck) Run() CheckResult {
	var missing []string
	for _, name := range []string{"requirements.txt", "meta.json", "setup.sh", "reload.sh", "run.sh", filepath.Join("src", "main.py")} {
		if _, err := os.Stat(filepath.Join(c.root, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Module layout incomplete: missing %s", strings.Join(missing, ", ")),
			Details: "pack bundles these fixed-name artifacts verbatim",
			Impact:  "pack and run will fail",
		}
	}
	return CheckResult{Status: StatusOK, Message: "Module layout complete"}
}

// ManifestCheck parses and validates meta.json
type ManifestCheck struct {
	root string
}

func (c *ManifestCheck) Name() string        { return "Manifest" }
func (c *ManifestCheck) Description() string { return "Validating meta.json" }
func (c *ManifestCheck) CanAutoFix() bool    { return false }
func (c *ManifestCheck) Fix() error          { return nil }
func (c *ManifestCheck) Severity() Severity  { return SeverityMedium }

func (c *ManifestCheck) Run() CheckResult {
	m, err := modfile.Load(c.root)
	if err != nil {
		return CheckResult{
			Status:     StatusError,
			Message:    "Module manifest invalid",
			Details:    err.Error(),
			FixCommand: "modkit inspect",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Manifest valid: %s (%d models)", m.ModuleID, len(m.Models))}
}

// DistWritableCheck ensures the output directory can be created and written
type DistWritableCheck struct {
	root string
}

func (c *DistWritableCheck) Name() string        { return "Output" }
func (c *DistWritableCheck) Description() string { return "Checking dist/ writability" }
func (c *DistWritableCheck) CanAutoFix() bool    { return true }
func (c *DistWritableCheck) Severity() Severity  { return SeverityMedium }

func (c *DistWritableCheck) Fix() error {
	return os.MkdirAll(filepath.Join(c.root, "dist"), 0o755)
}

func (c *DistWritableCheck) Run() CheckResult {
	dist := filepath.Join(c.root, "dist")
	if info, err := os.Stat(dist); err == nil && !info.IsDir() {
		return CheckResult{
			Status:     StatusError,
			Message:    "dist exists but is not a directory",
			FixCommand: "rm dist && modkit doctor --fix",
			Impact:     "pack cannot publish an archive",
		}
	}
	marker := filepath.Join(c.root, ".modkit-doctor-write-check")
	if err := os.WriteFile(marker, []byte("ok"), 0o644); err != nil {
		return CheckResult{
			Status:  StatusError,
			Message: "Module directory is not writable",
			Details: err.Error(),
			Impact:  "pack cannot write dist/archive.tar.gz",
		}
	}
	os.Remove(marker)
	return CheckResult{Status: StatusOK, Message: "Output directory writable"}
}

// Fix attempts automatic fixes for checks that support it.
func (d *Doctor) Fix() {
	fmt.Println("\n🔧 Attempting to fix issues...")
	for _, c := range d.checks {
		res := c.Run()
		if res.Status != StatusOK && c.CanAutoFix() {
			if err := c.Fix(); err != nil {
				fmt.Printf("❌ %s: fix failed: %v\n", c.Name(), err)
			} else {
				fmt.Printf("✅ %s: fixed\n", c.Name())
			}
		}
	}
}

// RunDoctorWithOptions runs checks against root and optionally applies fixes.
func RunDoctorWithOptions(root string, verbose, fix bool) {
	d := &Doctor{root: root, verbose: verbose}
	_ = d.Run()
	if fix {
		d.Fix()
	}
}
