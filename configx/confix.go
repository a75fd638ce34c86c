package configx

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config represents the main configuration interface
type Config interface {
	// Get retrieves a configuration value by dotted key ("whatsapp.access_token")
	Get(key string) Value

	// Set sets a configuration value
	Set(key string, val any)

	// Has checks if a configuration key exists
	Has(key string) bool

	// AllSettings returns a copy of all settings
	AllSettings() map[string]any

	// AddSource adds a configuration source
	AddSource(source Source) error

	// LoadAll reloads all configuration sources
	LoadAll() error
}

// Source represents a configuration source
type Source interface {
	// Load loads configuration values from the source
	Load() (map[string]any, error)

	// Name returns the name of the source
	Name() string

	// Priority returns the priority of the source (higher values override lower)
	Priority() int
}

// Value wraps a configuration value and provides type conversion methods
type Value interface {
	IsSet() bool
	AsString() string
	AsStringDefault(def string) string
	AsInt() int
	AsIntDefault(def int) int
	AsBool() bool
	AsBoolDefault(def bool) bool
	AsDuration() time.Duration
	AsDurationDefault(def time.Duration) time.Duration
}

const (
	PriorityDefault = 10 // Lowest priority
	PriorityDotEnv  = 20
	PriorityEnv     = 30
	PriorityMap     = 40 // Highest priority
)

//-----------------------------------------------------------------------------
// Implementation
//-----------------------------------------------------------------------------

type configuration struct {
	sync.RWMutex
	values  map[string]any
	sources []Source
}

// New creates an empty Config
func New() Config {
	return &configuration{
		values: make(map[string]any),
	}
}

func (c *configuration) Get(key string) Value {
	c.RLock()
	defer c.RUnlock()
	return newValue(key, c.findValue(key))
}

// findValue walks nested maps following the dotted key
func (c *configuration) findValue(key string) any {
	parts := strings.Split(key, ".")
	current := c.values

	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		current = m
	}

	return nil
}

func (c *configuration) Set(key string, val any) {
	c.Lock()
	defer c.Unlock()
	setNested(c.values, strings.Split(key, "."), val)
}

func (c *configuration) Has(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.findValue(key) != nil
}

func (c *configuration) AllSettings() map[string]any {
	c.RLock()
	defer c.RUnlock()
	return deepCopyMap(c.values)
}

// AddSource registers a source and merges it over what is already loaded.
// Sources are kept sorted so LoadAll applies them lowest priority first.
func (c *configuration) AddSource(source Source) error {
	data, err := source.Load()
	if err != nil {
		return fmt.Errorf("error loading from source %s: %w", source.Name(), err)
	}

	c.Lock()
	defer c.Unlock()

	c.sources = append(c.sources, source)
	sortSourcesByPriority(c.sources)

	// A lower-priority source added late must not override what is loaded
	if c.sources[len(c.sources)-1] != source {
		return c.reloadLocked()
	}
	mergeMapRecursive(c.values, data)
	return nil
}

func (c *configuration) LoadAll() error {
	c.Lock()
	defer c.Unlock()
	return c.reloadLocked()
}

func (c *configuration) reloadLocked() error {
	values := make(map[string]any)
	for _, source := range c.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("error loading from source %s: %w", source.Name(), err)
		}
		mergeMapRecursive(values, data)
	}
	c.values = values
	return nil
}

// sortSourcesByPriority sorts sources by priority (higher priority last)
func sortSourcesByPriority(sources []Source) {
	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			if sources[i].Priority() > sources[j].Priority() {
				sources[i], sources[j] = sources[j], sources[i]
			}
		}
	}
}

func setNested(dst map[string]any, parts []string, val any) {
	current := dst
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = val
			return
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}

// mergeMapRecursive recursively merges src into dst
func mergeMapRecursive(dst, src map[string]any) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				mergeMapRecursive(dstMap, srcMap)
				continue
			}
			dst[k] = deepCopyMap(srcMap)
			continue
		}
		dst[k] = v
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			result[k] = deepCopyMap(nested)
			continue
		}
		result[k] = v
	}
	return result
}

//-----------------------------------------------------------------------------
// Value implementation
//-----------------------------------------------------------------------------

type value struct {
	key string
	val any
}

func newValue(key string, val any) Value {
	return &value{key: key, val: val}
}

func (v *value) IsSet() bool {
	return v.val != nil
}

func (v *value) AsString() string {
	return v.AsStringDefault("")
}

func (v *value) AsStringDefault(def string) string {
	if !v.IsSet() {
		return def
	}

	switch val := v.val.(type) {
	case string:
		if val == "" {
			return def
		}
		return val
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", val)
	default:
		return def
	}
}

func (v *value) AsInt() int {
	return v.AsIntDefault(0)
}

func (v *value) AsIntDefault(def int) int {
	switch val := v.val.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return def
}

func (v *value) AsBool() bool {
	return v.AsBoolDefault(false)
}

func (v *value) AsBoolDefault(def bool) bool {
	switch val := v.val.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return def
}

func (v *value) AsDuration() time.Duration {
	return v.AsDurationDefault(0)
}

// AsDurationDefault accepts Go duration strings ("10s") or plain integers,
// which are read as seconds.
func (v *value) AsDurationDefault(def time.Duration) time.Duration {
	switch val := v.val.(type) {
	case time.Duration:
		return val
	case int:
		return time.Duration(val) * time.Second
	case float64:
		return time.Duration(val * float64(time.Second))
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(val)); err == nil {
			return d
		}
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return def
}

//-----------------------------------------------------------------------------
// Builder
//-----------------------------------------------------------------------------

// Builder provides a fluent API for building configuration
type Builder struct {
	sources      []Source
	optional     map[Source]bool
	requiredEnvs []string
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{optional: make(map[Source]bool)}
}

// WithDefaults adds default values at the lowest priority
func (b *Builder) WithDefaults(defaults map[string]any) *Builder {
	b.sources = append(b.sources, NewMapSource(defaults, "defaults", PriorityDefault))
	return b
}

// FromDotEnv adds a .env file source. A missing file is not an error.
func (b *Builder) FromDotEnv(path string) *Builder {
	src := NewDotEnvSource(path, PriorityDotEnv)
	b.sources = append(b.sources, src)
	b.optional[src] = true
	return b
}

// FromEnv adds an environment variable source
func (b *Builder) FromEnv(prefix string) *Builder {
	b.sources = append(b.sources, NewEnvSource(prefix, PriorityEnv))
	return b
}

// FromMap adds a map source at the highest priority
func (b *Builder) FromMap(values map[string]any, name string) *Builder {
	b.sources = append(b.sources, NewMapSource(values, name, PriorityMap))
	return b
}

// RequireEnv specifies environment variables that must be present
func (b *Builder) RequireEnv(envVars ...string) *Builder {
	b.requiredEnvs = append(b.requiredEnvs, envVars...)
	return b
}

// Build loads every source and checks required environment variables
func (b *Builder) Build() (Config, error) {
	var missing []string
	for _, env := range b.requiredEnvs {
		if os.Getenv(env) == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := New()
	for _, src := range b.sources {
		if err := cfg.AddSource(src); err != nil {
			if b.optional[src] && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}
	return cfg, nil
}
