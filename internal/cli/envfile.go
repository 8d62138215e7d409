package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const envPrefix = "CAST2GIF_"

var dotenvKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// loadEnvironment returns environ as a map with CAST2GIF_* values from
// .env and .env.local in cwd layered underneath. Process variables always
// win; keys without the prefix in the files are ignored.
func loadEnvironment(cwd string, environ []string) (map[string]string, error) {
	env := map[string]string{}
	for _, pair := range environ {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		env[parts[0]] = parts[1]
	}
	if strings.TrimSpace(cwd) == "" {
		return env, nil
	}

	fromFiles := map[string]string{}
	for _, name := range []string{".env", ".env.local"} {
		if err := readDotEnvFile(filepath.Join(cwd, name), fromFiles); err != nil {
			return env, err
		}
	}
	for key, value := range fromFiles {
		if _, exists := env[key]; !exists {
			env[key] = value
		}
	}
	return env, nil
}

func readDotEnvFile(path string, into map[string]string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	scanner := bufio.NewScanner(strings.NewReader(string(payload)))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, parseErr := parseDotEnvLine(scanner.Text())
		if parseErr != nil {
			return fmt.Errorf("parse %s:%d: %w", path, lineNo, parseErr)
		}
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		into[key] = value
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

func parseDotEnvLine(raw string) (string, string, bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false, fmt.Errorf("expected KEY=VALUE format")
	}
	key = strings.TrimSpace(key)
	if !dotenvKeyPattern.MatchString(key) {
		return "", "", false, fmt.Errorf("invalid key %q", key)
	}
	value = strings.TrimSpace(value)

	switch {
	case len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"':
		decoded, err := strconv.Unquote(value)
		if err != nil {
			return "", "", false, fmt.Errorf("invalid quoted value for %q", key)
		}
		return key, decoded, true, nil
	case len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'':
		return key, value[1 : len(value)-1], true, nil
	}
	return key, value, true, nil
}
