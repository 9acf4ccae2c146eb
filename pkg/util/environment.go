package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "RAILACCESS_"

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// IsConfigured reports whether any of the named settings (without prefix) is set.
func IsConfigured(names ...string) bool {
	env := GetEnvironmentVariables()

	for _, name := range names {
		if env[EnvironmentPrefix+name] != "" {
			return true
		}
	}

	return false
}
