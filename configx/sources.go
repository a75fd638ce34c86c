package configx

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Environment variables source
// ===========================

// EnvSource loads configuration from environment variables. Values stay raw
// strings; the typed accessors parse them on read. The first
// underscore after the prefix separates section from key, so
// WHATSAPP_ACCESS_TOKEN becomes whatsapp.access_token and PORT stays port.
type EnvSource struct {
	prefix   string
	priority int
	environ  func() []string
}

// NewEnvSource creates a new environment variable source
func NewEnvSource(prefix string, priority int) Source {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		environ:  os.Environ,
	}
}

// Load loads configuration values from environment variables
func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}

		setNested(result, splitEnvKey(key), value)
	}

	return result, nil
}

func (s *EnvSource) Name() string {
	return fmt.Sprintf("env(%s)", s.prefix)
}

func (s *EnvSource) Priority() int {
	return s.priority
}

// DotEnv file source
// ===========================

// DotEnvSource loads configuration from a .env file using the same key
// mapping as EnvSource.
type DotEnvSource struct {
	path     string
	priority int
}

// NewDotEnvSource creates a new .env file source
func NewDotEnvSource(path string, priority int) Source {
	return &DotEnvSource{
		path:     path,
		priority: priority,
	}
}

// Load loads configuration values from a .env file
func (s *DotEnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) > 1 && (value[0] == '"' && value[len(value)-1] == '"' ||
			value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}

		setNested(result, splitEnvKey(key), value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	return result, nil
}

func (s *DotEnvSource) Name() string {
	return fmt.Sprintf("dotenv(%s)", s.path)
}

func (s *DotEnvSource) Priority() int {
	return s.priority
}

// Map source
// ===========================

// MapSource loads configuration from a map
type MapSource struct {
	values   map[string]any
	name     string
	priority int
}

// NewMapSource creates a new map source. Dotted keys are expanded into
// nested sections.
func NewMapSource(values map[string]any, name string, priority int) Source {
	expanded := make(map[string]any, len(values))
	for k, v := range values {
		if nested, ok := v.(map[string]any); ok {
			v = deepCopyMap(nested)
		}
		setNested(expanded, strings.Split(k, "."), v)
	}
	return &MapSource{
		values:   expanded,
		name:     name,
		priority: priority,
	}
}

func (s *MapSource) Load() (map[string]any, error) {
	return deepCopyMap(s.values), nil
}

func (s *MapSource) Name() string {
	return s.name
}

func (s *MapSource) Priority() int {
	return s.priority
}

// Helpers
// ===========================

func splitEnvKey(key string) []string {
	key = strings.ToLower(key)
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return []string{key}
	}
	return []string{section, rest}
}
