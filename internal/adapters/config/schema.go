package config

// Manifest is the on-disk structure of a tdbuild manifest. Libraries, file
// groups, and groups are lists, not maps: declaration order is semantic,
// since a dependency must be declared before anything references it.
type Manifest struct {
	Version   string `yaml:"version"`
	Generated string `yaml:"generated"`

	// Generator is the default generator executable for groups that do not
	// name their own.
	Generator string `yaml:"generator"`

	Filegroups []FilegroupDTO `yaml:"filegroups"`
	Libraries  []LibraryDTO   `yaml:"libraries"`
	Groups     []GroupDTO     `yaml:"groups"`

	// Omit maps a GOOS name to option flags dropped from generator command
	// lines on that platform.
	Omit map[string][]string `yaml:"omit"`
}

// FilegroupDTO declares a plain named list of declaration files.
type FilegroupDTO struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

// LibraryDTO declares a unit of declaration files with include paths and
// dependencies.
type LibraryDTO struct {
	Name     string   `yaml:"name"`
	Package  string   `yaml:"package"`
	Files    []string `yaml:"files"`
	Includes []string `yaml:"includes"`
	Deps     []string `yaml:"deps"`
}

// GroupDTO declares a generation group.
type GroupDTO struct {
	Name        string      `yaml:"name"`
	Package     string      `yaml:"package"`
	Generator   string      `yaml:"generator"`
	File        string      `yaml:"file"`
	Extra       []string    `yaml:"extra"`
	Includes    []string    `yaml:"includes"`
	Deps        []string    `yaml:"deps"`
	Targets     []TargetDTO `yaml:"targets"`
	DocOnly     []string    `yaml:"docOnly"`
	StripPrefix string      `yaml:"stripPrefix"`
	TestScript  bool        `yaml:"testScript"`
}

// TargetDTO is one (option-string, output-file) pair.
type TargetDTO struct {
	Opts string `yaml:"opts"`
	Out  string `yaml:"out"`
}
