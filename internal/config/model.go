package config

// FileName is the layout file looked up in the anchor directory.
const FileName = ".baseliner.yaml"

// File represents .baseliner.yaml.
type File struct {
	Version     int        `yaml:"version"`
	RootProject *bool      `yaml:"root_project,omitempty"`
	Vcpkg       string     `yaml:"vcpkg,omitempty"`
	ScanRoots   []ScanRoot `yaml:"scan_roots,omitempty"`
	Exclude     []string   `yaml:"exclude,omitempty"`
}

// ScanRoot is a directory, relative to the anchor, searched recursively for projects.
type ScanRoot struct {
	Path     string `yaml:"path"`
	Optional bool   `yaml:"optional,omitempty"`
}

// Layout is the resolved set of directories a run visits.
type Layout struct {
	Anchor      string
	RootProject bool
	ScanRoots   []ScanRoot
	Exclude     []string
}

// DefaultScanRoots returns the scan roots used when the file names none.
func DefaultScanRoots() []ScanRoot {
	return []ScanRoot{
		{Path: "projects"},
		{Path: "bitloop/examples"},
	}
}

// Default returns the built-in layout file.
func Default() *File {
	return &File{Version: 1, ScanRoots: DefaultScanRoots()}
}

// IncludeRoot returns whether the anchor's own manifest is updated (default true).
func (f *File) IncludeRoot() bool {
	if f.RootProject != nil {
		return *f.RootProject
	}
	return true
}

// Layout resolves the file against an anchor directory.
func (f *File) Layout(anchor string) Layout {
	roots := f.ScanRoots
	if len(roots) == 0 {
		roots = DefaultScanRoots()
	}
	return Layout{
		Anchor:      anchor,
		RootProject: f.IncludeRoot(),
		ScanRoots:   roots,
		Exclude:     f.Exclude,
	}
}
