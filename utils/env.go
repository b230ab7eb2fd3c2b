package utils

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var loadOnce sync.Once

// LoadEnv loads environment variables from a .env file, searching upward from
// the working directory for at most 3 levels. Existing variables win.
func LoadEnv() {
	loadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		dir := cwd
		for i := 0; i < 3; i++ {
			path := filepath.Join(dir, ".env")
			if st, err := os.Stat(path); err == nil && !st.IsDir() {
				if err := godotenv.Load(path); err != nil {
					logrus.WithError(err).WithField("path", path).Warn("cannot load .env")
				}
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	})
}

// GetEnvOrDefault returns the variable's value or fallback when unset/empty.
func GetEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
