package jsonx

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Options controls how a Mapper renders values.
type Options struct {
	// Indent is the indention step, in spaces, used by the pretty writers.
	Indent int

	// SortMapKeys renders map keys in sorted order for stable output.
	SortMapKeys bool

	// EscapeHTML escapes <, > and & inside JSON strings.
	EscapeHTML bool

	// AutoCloseTarget closes the target writer after a successful
	// WriteValue/WritePretty when it implements io.Closer. The process
	// standard streams are never closed.
	AutoCloseTarget bool
}

// DefaultOptions returns the options used by Default.
func DefaultOptions() Options {
	return Options{
		Indent:          2,
		SortMapKeys:     true,
		EscapeHTML:      false,
		AutoCloseTarget: true,
	}
}

// Mapper serializes values to JSON with a fixed configuration. A Mapper is
// immutable once created; use Copy to derive a variant.
type Mapper struct {
	opts    Options
	compact jsoniter.API
	pretty  jsoniter.API
}

// New creates a mapper from the given options.
func New(opts Options) *Mapper {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}

	base := jsoniter.Config{
		SortMapKeys:            opts.SortMapKeys,
		EscapeHTML:             opts.EscapeHTML,
		ValidateJsonRawMessage: true,
	}
	prettyCfg := base
	prettyCfg.IndentionStep = opts.Indent

	return &Mapper{
		opts:    opts,
		compact: base.Froze(),
		pretty:  prettyCfg.Froze(),
	}
}

// Default creates a mapper with DefaultOptions.
func Default() *Mapper {
	return New(DefaultOptions())
}

// Options returns a copy of the mapper's options.
func (m *Mapper) Options() Options {
	return m.opts
}

// Copy derives a new mapper from this one, applying the given option
// modifiers. The receiver is not changed.
func (m *Mapper) Copy(mods ...func(*Options)) *Mapper {
	opts := m.opts
	for _, mod := range mods {
		mod(&opts)
	}

	return New(opts)
}

// Marshal renders a value as compact JSON.
func (m *Mapper) Marshal(v any) ([]byte, error) {
	return m.compact.Marshal(v)
}

// MarshalPretty renders a value as indented JSON.
func (m *Mapper) MarshalPretty(v any) ([]byte, error) {
	return m.pretty.Marshal(v)
}

// Unmarshal parses JSON into the given value.
func (m *Mapper) Unmarshal(data []byte, v any) error {
	return m.compact.Unmarshal(data, v)
}

// WriteValue writes a value as compact JSON to w. Nothing is written when
// serialization fails.
func (m *Mapper) WriteValue(w io.Writer, v any) error {
	return m.write(m.compact, w, v)
}

// WritePretty writes a value as indented JSON to w. Nothing is written
// when serialization fails.
func (m *Mapper) WritePretty(w io.Writer, v any) error {
	return m.write(m.pretty, w, v)
}

func (m *Mapper) write(api jsoniter.API, w io.Writer, v any) error {
	data, err := api.Marshal(v)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	return m.closeTarget(w)
}

func (m *Mapper) closeTarget(w io.Writer) error {
	if !m.opts.AutoCloseTarget {
		return nil
	}

	if w == io.Writer(os.Stdout) || w == io.Writer(os.Stderr) {
		return nil
	}

	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
