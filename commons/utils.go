// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

var envOnce sync.Once

// LoadEnvFile seeds the environment from the file named by --env-file. It
// runs once per process; variables already present in the environment win.
func LoadEnvFile() {
	envOnce.Do(func() {
		path := envFileArg(os.Args[1:])
		if path == "" {
			return
		}
		fmt.Fprintf(os.Stderr, "Loading environment variables from file: %s\n", path)
		file, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open env file: %s\n", err)
			return
		}
		defer file.Close()

		values, err := ParseEnv(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading env file: %s\n", err)
		}
		for key, val := range values {
			if _, set := os.LookupEnv(key); !set {
				os.Setenv(key, val)
			}
		}
	})
}

func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
	}
	return ""
}

// ParseEnv reads KEY=VALUE lines, skipping blanks and # comments. Matching
// single or double quotes around a value are removed.
func ParseEnv(r io.Reader) (map[string]string, error) {
	values := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		val = strings.TrimSpace(val)
		if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
			val = val[1 : len(val)-1]
		}
		values[key] = val
	}
	return values, scanner.Err()
}

// GetEnv returns the value of key, or the first fallback when it is unset or
// blank.
func GetEnv(key string, fallback ...string) string {
	LoadEnvFile()
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// GetEnvInt parses key as an integer, returning fallback when it is unset or
// not a number.
func GetEnvInt(key string, fallback int) int {
	v := GetEnv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		Logger.Warnf("Ignoring invalid %s=%q: %v", key, v, err)
		return fallback
	}
	return i
}
