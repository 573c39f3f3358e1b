package util

import (
	"os"
	"path/filepath"

	"github.com/nilotpaul/spaboot/setting"
)

func GetEnv(key string, fallback ...string) string {
	v := os.Getenv(key)
	if len(v) == 0 && len(fallback) > 0 {
		return fallback[0]
	}

	return v
}

func IsProduction() bool {
	e := GetEnv("ENVIRONMENT")

	return e == "PROD" || e == setting.ProductionMode
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fi.IsDir()
}

// ExecutableDir returns the directory holding the running binary, falling back
// to the working directory when it can't be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return WorkDir()
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}

func WorkDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}
