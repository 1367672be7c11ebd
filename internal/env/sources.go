package env

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrsarm/appctx/errors"
)

// Source supplies a tree of configuration values. Sources with a higher
// priority override values loaded from lower-priority ones.
type Source interface {
	Name() string
	Priority() int
	Load() (map[string]any, error)
}

// Default priorities: files are the base, programmatic maps override them,
// and OS environment variables override everything.
const (
	PriorityFile = 10
	PriorityMap  = 50
	PriorityEnv  = 100
)

// =============================================================================
// MAP SOURCE
// =============================================================================

// MapSource is a programmatic, in-memory source. Keys may be nested maps
// or flat dot paths; both resolve the same way.
type MapSource struct {
	name     string
	priority int
	data     map[string]any
}

// NewMapSource creates a source backed by the given map.
func NewMapSource(name string, data map[string]any) *MapSource {
	return &MapSource{name: name, priority: PriorityMap, data: data}
}

// WithPriority overrides the source priority.
func (s *MapSource) WithPriority(priority int) *MapSource {
	s.priority = priority
	return s
}

func (s *MapSource) Name() string {
	return "map:" + s.name
}

func (s *MapSource) Priority() int {
	return s.priority
}

func (s *MapSource) Load() (map[string]any, error) {
	out := make(map[string]any, len(s.data))
	for key, value := range s.data {
		setValue(out, key, value)
	}

	return out, nil
}

// =============================================================================
// OS ENVIRONMENT SOURCE
// =============================================================================

// EnvSource loads OS environment variables carrying the given prefix.
// The prefix is stripped and the rest is lowercased with underscores
// mapped to dots, so APP_SERVER_PORT becomes server.port.
type EnvSource struct {
	prefix   string
	priority int
}

// NewEnvSource creates an OS environment source for the given prefix.
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{prefix: prefix, priority: PriorityEnv}
}

// WithPriority overrides the source priority.
func (s *EnvSource) WithPriority(priority int) *EnvSource {
	s.priority = priority
	return s
}

func (s *EnvSource) Name() string {
	return "env:" + s.prefix
}

func (s *EnvSource) Priority() int {
	return s.priority
}

func (s *EnvSource) Load() (map[string]any, error) {
	out := make(map[string]any)

	for _, entry := range os.Environ() {
		pair := strings.SplitN(entry, "=", 2)
		if len(pair) != 2 {
			continue
		}

		name, value := pair[0], pair[1]
		if s.prefix != "" && !strings.HasPrefix(name, s.prefix) {
			continue
		}

		key := strings.TrimPrefix(name, s.prefix)
		key = strings.ToLower(strings.ReplaceAll(key, "_", "."))
		if key == "" {
			continue
		}

		setValue(out, key, value)
	}

	return out, nil
}

// =============================================================================
// YAML FILE SOURCE
// =============================================================================

// FileSource loads a YAML configuration file.
type FileSource struct {
	path     string
	priority int
	optional bool
}

// NewFileSource creates a YAML file source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, priority: PriorityFile}
}

// WithPriority overrides the source priority.
func (s *FileSource) WithPriority(priority int) *FileSource {
	s.priority = priority
	return s
}

// Optional makes a missing file load as empty instead of failing.
func (s *FileSource) Optional() *FileSource {
	s.optional = true
	return s
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Priority() int {
	return s.priority
}

func (s *FileSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if s.optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}

		return nil, errors.ErrConfigError("cannot read config file "+s.path, err)
	}

	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.ErrConfigError("cannot parse config file "+s.path, err)
	}

	if out == nil {
		out = map[string]any{}
	}

	return out, nil
}

// setValue stores a value under a dot path, creating nested maps as needed.
func setValue(data map[string]any, key string, value any) {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		if i == len(keys)-1 {
			current[k] = value
			continue
		}

		next, ok := current[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[k] = next
		}

		current = next
	}
}
