package paths

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the project-level config file looked up in the working
// directory.
const ConfigFileName = "chime.yaml"

// homeDir returns the user's home directory, panicking if it can't be resolved.
var homeDir = func() string {
	h, err := os.UserHomeDir()
	if err != nil {
		panic("cannot resolve home directory: " + err.Error())
	}
	return h
}

// SetHomeDir overrides the home directory used by all path functions.
// Intended for testing. Returns a restore function.
func SetHomeDir(dir string) func() {
	old := homeDir
	homeDir = func() string { return dir }
	return func() { homeDir = old }
}

// ChimeDir returns ~/.chime/
func ChimeDir() string {
	return filepath.Join(homeDir(), ".chime")
}

// UserConfigPath returns ~/.chime/config.yaml
func UserConfigPath() string {
	return filepath.Join(ChimeDir(), "config.yaml")
}

// ConfigPath returns <baseDir>/chime.yaml
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ConfigFileName)
}

// ResolveConfig picks the config file to load: the project file when it
// exists, otherwise the per-user file (which may not exist either).
func ResolveConfig(baseDir string) string {
	project := ConfigPath(baseDir)
	if _, err := os.Stat(project); err == nil {
		return project
	}
	return UserConfigPath()
}

// TimbreDir returns <outputDir>/<timbre>/
func TimbreDir(outputDir, timbre string) string {
	return filepath.Join(outputDir, timbre)
}

// SoundPath returns <outputDir>/<timbre>/<melody>.wav
func SoundPath(outputDir, timbre, melody string) string {
	return filepath.Join(TimbreDir(outputDir, timbre), melody+".wav")
}
