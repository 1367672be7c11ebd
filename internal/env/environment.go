package env

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrsarm/appctx/internal/logger"
)

// Environment resolves configuration properties merged from one or more
// sources. Lookups traverse nested maps with dot paths, so a YAML document
// with server.port and the variable APP_SERVER_PORT land on the same key.
//
// A missing property is never an error: Get returns nil, the typed getters
// return their zero value or the caller-supplied default, and Lookup
// reports presence explicitly.
type Environment struct {
	data    map[string]any
	sources []Source
	log     logger.Logger
	mu      sync.RWMutex
}

// Empty creates an environment with no sources. Values can still be added
// with Set.
func Empty() *Environment {
	return &Environment{
		data: make(map[string]any),
		log:  logger.NewNoopLogger(),
	}
}

// New creates an environment from the given sources. Sources are loaded
// eagerly, lowest priority first, so higher-priority values win.
func New(sources ...Source) (*Environment, error) {
	e := Empty()

	e.sources = make([]Source, len(sources))
	copy(e.sources, sources)
	sort.SliceStable(e.sources, func(i, j int) bool {
		return e.sources[i].Priority() < e.sources[j].Priority()
	})

	for _, src := range e.sources {
		loaded, err := src.Load()
		if err != nil {
			return nil, err
		}

		merge(e.data, loaded)
		e.log.Debug("config source loaded",
			logger.String("source", src.Name()),
			logger.Int("keys", len(loaded)),
		)
	}

	return e, nil
}

// WithLogger replaces the environment logger.
func (e *Environment) WithLogger(log logger.Logger) *Environment {
	if log != nil {
		e.log = log
	}

	return e
}

// Get returns the raw value bound to a dot-path key, or nil when the key
// cannot be resolved.
func (e *Environment) Get(key string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return getValue(e.data, key)
}

// Has reports whether the key resolves to a value.
func (e *Environment) Has(key string) bool {
	return e.Get(key) != nil
}

// Lookup returns the string rendering of a property and whether it was
// present, mirroring os.LookupEnv.
func (e *Environment) Lookup(key string) (string, bool) {
	value := e.Get(key)
	if value == nil {
		return "", false
	}

	return toString(value), true
}

// GetString returns the property as a string, or the optional default when
// the key cannot be resolved.
func (e *Environment) GetString(key string, def ...string) string {
	value := e.Get(key)
	if value == nil {
		if len(def) > 0 {
			return def[0]
		}

		return ""
	}

	return toString(value)
}

// GetInt returns the property as an int, or the optional default when the
// key cannot be resolved or converted.
func (e *Environment) GetInt(key string, def ...int) int {
	fallback := 0
	if len(def) > 0 {
		fallback = def[0]
	}

	value := e.Get(key)
	if value == nil {
		return fallback
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}

	return fallback
}

// GetBool returns the property as a bool, or the optional default when the
// key cannot be resolved or converted.
func (e *Environment) GetBool(key string, def ...bool) bool {
	fallback := false
	if len(def) > 0 {
		fallback = def[0]
	}

	value := e.Get(key)
	if value == nil {
		return fallback
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}

	return fallback
}

// GetDuration returns the property as a time.Duration, accepting Go
// duration strings, or the optional default when unresolved.
func (e *Environment) GetDuration(key string, def ...time.Duration) time.Duration {
	fallback := time.Duration(0)
	if len(def) > 0 {
		fallback = def[0]
	}

	value := e.Get(key)
	if value == nil {
		return fallback
	}

	switch v := value.(type) {
	case time.Duration:
		return v
	case int:
		return time.Duration(v)
	case int64:
		return time.Duration(v)
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}

	return fallback
}

// Set binds a value under a dot-path key, overriding any loaded source.
func (e *Environment) Set(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	setValue(e.data, key, value)
}

// Keys returns all resolvable dot-path keys, sorted.
func (e *Environment) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := flatten("", e.data)
	sort.Strings(keys)

	return keys
}

// ActiveProfiles returns the profile names bound to the app.profiles
// property, given as a list or a comma-separated string. Nil when unset.
func (e *Environment) ActiveProfiles() []string {
	value := e.Get("app.profiles")
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case []any:
		profiles := make([]string, 0, len(v))
		for _, item := range v {
			profiles = append(profiles, toString(item))
		}

		return profiles
	case []string:
		return v
	default:
		var profiles []string
		for _, p := range strings.Split(toString(v), ",") {
			if p = strings.TrimSpace(p); p != "" {
				profiles = append(profiles, p)
			}
		}

		return profiles
	}
}

// getValue walks nested maps following a dot path.
func getValue(data map[string]any, key string) any {
	current := any(data)

	for _, k := range strings.Split(key, ".") {
		switch v := current.(type) {
		case map[string]any:
			current = v[k]
		case map[any]any:
			current = v[k]
		default:
			return nil
		}

		if current == nil {
			return nil
		}
	}

	return current
}

// merge overlays src onto dst, descending into maps so sibling keys from
// different sources survive.
func merge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)

		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}

		dst[key] = value
	}
}

func flatten(prefix string, data map[string]any) []string {
	var keys []string

	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			keys = append(keys, flatten(full, nested)...)
			continue
		}

		keys = append(keys, full)
	}

	return keys
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
