package report

// Status values for a run or a single project.
const (
	StatusUpdated = "updated"
	StatusPlanned = "planned"
	StatusFailed  = "failed"
	StatusOK      = "ok"
)

// File represents a run record.
type File struct {
	Version     int       `yaml:"version"`
	Anchor      string    `yaml:"anchor"`
	StartedAt   string    `yaml:"started_at"`
	FinishedAt  string    `yaml:"finished_at"`
	ToolVersion string    `yaml:"tool_version"`
	Vcpkg       string    `yaml:"vcpkg"`
	Status      string    `yaml:"status"`
	Error       string    `yaml:"error,omitempty"`
	Projects    []Project `yaml:"projects"`
}

// Project records the outcome for one project directory.
type Project struct {
	ScanRoot string `yaml:"scan_root"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Status   string `yaml:"status"`
	ExitCode int    `yaml:"exit_code,omitempty"`
}
