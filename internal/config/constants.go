package config

// Version is the current Nightjar version.
var Version = "0.1.0"

const SourceFileExt = ".nj"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".nj"}

// HasSourceExt returns true if the path ends with any recognized
// source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Built-in native function names.
const (
	ClockFuncName = "clock"
)
