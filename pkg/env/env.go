package env

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// FileName is the environment-definition file looked up by Find.
const FileName = ".env"

// Find walks from dir up to the filesystem root and returns the first .env
// file it meets.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load merges the nearest .env file above the working directory into the
// process environment. Variables that are already set keep their value, so
// calling Load again has no further effect. A missing file is not an error.
func Load() {
	wd, err := os.Getwd()
	if err != nil {
		slog.Debug("env_load_skipped", "error", err)
		return
	}
	LoadFrom(wd)
}

// LoadFrom is Load starting the search at dir. It reports the file that was
// loaded, if any.
func LoadFrom(dir string) (string, bool) {
	path, ok := Find(dir)
	if !ok {
		slog.Debug("env_file_not_found", "dir", dir)
		return "", false
	}

	if err := godotenv.Load(path); err != nil {
		slog.Warn("env_file_parse_failed, loading valid lines only", "path", path, "error", err)
		if err := loadLines(path); err != nil {
			slog.Warn("env_file_load_failed", "path", path, "error", err)
			return "", false
		}
	}

	slog.Debug("env_loaded", "path", path)
	return path, true
}

// loadLines sets the variables of every line that parses on its own and
// skips the rest. Like godotenv.Load it never overrides a set variable.
func loadLines(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for i, line := range strings.Split(string(data), "\n") {
		vals, err := godotenv.Unmarshal(line)
		if err != nil {
			slog.Warn("env_line_skipped", "path", path, "line", i+1, "error", err)
			continue
		}
		for k, v := range vals {
			if _, set := os.LookupEnv(k); !set {
				os.Setenv(k, v)
			}
		}
	}
	return nil
}

// Read parses the nearest .env file above dir without touching the process
// environment. It returns an empty map when there is no file.
func Read(dir string) (map[string]string, error) {
	path, ok := Find(dir)
	if !ok {
		return map[string]string{}, nil
	}
	return godotenv.Read(path)
}
