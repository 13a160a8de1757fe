package env

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvPrefix marks process environment variables that become suite variables.
	EnvPrefix = "STRUCTEQ_VAR_"

	// DotEnvFile is read from the suite directory when present.
	DotEnvFile = ".env"
)

// LoadVariables collects the variables available to a suite stored in dir.
// An empty dir skips the .env lookup.
func LoadVariables(dir string, suiteVars map[string]string) (map[string]string, error) {
	var dotenv map[string]string
	if dir != "" {
		path := filepath.Join(dir, DotEnvFile)
		if _, err := os.Stat(path); err == nil {
			vars, err := LoadDotEnv(path)
			if err != nil {
				return nil, err
			}
			dotenv = vars
		}
	}

	return MergeVariables(dotenv, suiteVars, LoadSystemEnv(EnvPrefix)), nil
}

func MergeVariables(sources ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// LoadSystemEnv returns the process environment variables starting with
// prefix, keyed without it. An empty prefix returns everything.
func LoadSystemEnv(prefix string) map[string]string {
	result := make(map[string]string)
	for _, e := range os.Environ() {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if name, found := strings.CutPrefix(key, prefix); found && name != "" {
			result[name] = value
		}
	}
	return result
}
