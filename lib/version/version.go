package version

import "fmt"

var (
	Version             string = "0.1.0" // VERSION should be updated by hand at each release. It must follow SemVer (https://semver.org)
	GitCommit, GitState string // GitCommit will be overwritten automatically by the build system
	BuildDate           string // BuildDate will be overwritten automatically by the build system
)

type Detail struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	GitState  string `json:"git_state" yaml:"git_state"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

func GetDetail() Detail {
	return Detail{
		Version:   Version,
		GitCommit: GitCommit,
		GitState:  GitState,
		BuildDate: BuildDate,
	}
}

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}
