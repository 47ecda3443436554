package python

// Origin records where a search path entry came from.
type Origin string

const (
	OriginConfig      Origin = "config"
	OriginPythonPath  Origin = "PYTHONPATH"
	OriginPth         Origin = "pth"
	OriginInterpreter Origin = "interpreter"
)

// SearchPath is one directory scanned for installed distributions.
type SearchPath struct {
	Dir    string `json:"dir"`
	Origin Origin `json:"origin"`
}

// Environment is what an interpreter reports about itself.
type Environment struct {
	Executable string   `json:"executable"`
	Version    string   `json:"version"`
	Prefix     string   `json:"prefix"`
	Path       []string `json:"path"`
}

// Dirs returns the directories of sp in order.
func Dirs(sp []SearchPath) []string {
	dirs := make([]string, len(sp))
	for i, p := range sp {
		dirs[i] = p.Dir
	}
	return dirs
}
