package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	tomlenc "github.com/pelletier/go-toml/v2"
	yamlenc "gopkg.in/yaml.v3"

	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/pkg/tags"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tagkit.toml"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "TAGKIT_"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"
)

// candidates are the file names searched in the working directory.
var candidates = []string{ConfigFileName, "tagkit.yaml", "tagkit.yml"}

// Config is the complete tagkit configuration.
type Config struct {
	// Tags holds the renderer options.
	Tags TagsConfig `koanf:"tags" toml:"tags" yaml:"tags"`

	// Tables holds entries added to the built-in classification tables.
	Tables tags.TableSpec `koanf:"tables" toml:"tables" yaml:"tables"`

	// Server holds the preview server settings.
	Server ServerConfig `koanf:"server" toml:"server" yaml:"server"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// TagsConfig holds the output format and newline policy.
type TagsConfig struct {
	// XHTML closes self-closing tags with " />".
	XHTML bool `koanf:"xhtml" toml:"xhtml" yaml:"xhtml"`

	// AddNewlines appends a newline after every tag.
	AddNewlines bool `koanf:"add_newlines" toml:"add_newlines" yaml:"add_newlines"`
}

// ServerConfig holds the preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `koanf:"host" toml:"host" yaml:"host"`

	// Port is the port to listen on.
	Port int `koanf:"port" toml:"port" yaml:"port"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `koanf:"metrics" toml:"metrics" yaml:"metrics"`

	// Tracing wraps requests in OpenTelemetry spans.
	Tracing bool `koanf:"tracing" toml:"tracing" yaml:"tracing"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Tags: TagsConfig{
			XHTML:       false,
			AddNewlines: true,
		},
		Tables: tags.TableSpec{
			MultiLine:   []string{},
			SelfClosing: []string{},
			SingleLine:  []string{},
			Boolean:     []string{},
		},
		Server: ServerConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Metrics: true,
			Tracing: false,
		},
	}
}

// defaults returns the default configuration as a flat koanf map.
func defaults() map[string]any {
	d := New()
	return map[string]any{
		"tags.xhtml":          d.Tags.XHTML,
		"tags.add_newlines":   d.Tags.AddNewlines,
		"tables.multi_line":   d.Tables.MultiLine,
		"tables.self_closing": d.Tables.SelfClosing,
		"tables.single_line":  d.Tables.SingleLine,
		"tables.boolean":      d.Tables.Boolean,
		"server.host":         d.Server.Host,
		"server.port":         d.Server.Port,
		"server.metrics":      d.Server.Metrics,
		"server.tracing":      d.Server.Tracing,
	}
}

// Find returns the configuration file that Load("") would read, or "" when
// there is none.
func Find() string {
	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	if path, err := xdg.SearchConfigFile(filepath.Join("tagkit", ConfigFileName)); err == nil {
		return path
	}
	return ""
}

// DefaultPath returns the XDG location for a new configuration file.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("tagkit", ConfigFileName))
}

// Load reads the configuration. An empty path searches the default
// locations and falls back to the defaults when no file exists; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Find()
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.New("E101").Wrap(err)
	}

	// 2. Config file
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("E100").
					WithFile(path).
					WithSuggestion("Run 'tagkit config init' to create it")
			}
			return nil, errors.New("E101").WithFile(path).Wrap(err)
		}

		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, locate(errors.New("E101").WithDetail(err.Error()).Wrap(err), path)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.New("E101").Wrap(err)
	}

	// 4. Unmarshal
	cfg := New()
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		e := errors.New("E101").WithDetail(err.Error()).Wrap(err)
		if path != "" {
			e.WithFile(path)
		}
		return nil, e
	}

	cfg.configPath = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// locate points e at path and, for a TOML syntax error, at the offending
// line and column.
func locate(e *errors.TagkitError, path string) *errors.TagkitError {
	e.WithFile(path)
	if filepath.Ext(path) != ".toml" {
		return e
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return e
	}
	var v map[string]any
	var derr *tomlenc.DecodeError
	if err := tomlenc.Unmarshal(data, &v); stderrors.As(err, &derr) {
		row, col := derr.Position()
		e.WithLocation(path, row, col)
	}
	return e
}

// parserFor picks the koanf parser for the file extension of path.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.New("E102").WithFile(path)
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path as TOML or YAML, by extension.
func (c *Config) SaveTo(path string) error {
	data, err := c.Marshal(strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New("E101").WithFile(path).Wrap(err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E101").WithFile(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Marshal encodes the configuration. ext is ".toml", ".yaml" or ".yml".
func (c *Config) Marshal(ext string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch ext {
	case ".toml":
		data, err = tomlenc.Marshal(c)
	case ".yaml", ".yml":
		data, err = yamlenc.Marshal(c)
	default:
		return nil, errors.New("E102").WithDetailf("unsupported extension %q", ext)
	}
	if err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	return data, nil
}

// Path returns the path the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks port range and table consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetailf("server.port is %d; it must be between 0 and 65535", c.Server.Port)
	}
	if _, err := c.TagTables(); err != nil {
		return err
	}
	return nil
}

// TagTables returns the built-in tables extended with the configured entries.
func (c *Config) TagTables() (*tags.Tables, error) {
	if isEmptySpec(c.Tables) {
		return tags.DefaultTables(), nil
	}
	t, err := tags.NewTables(tags.DefaultSpec().Merge(c.Tables))
	if err != nil {
		if te, ok := err.(*errors.TagkitError); ok && c.configPath != "" {
			te.WithFile(c.configPath)
		}
		return nil, err
	}
	return t, nil
}

func isEmptySpec(s tags.TableSpec) bool {
	return len(s.MultiLine) == 0 && len(s.SelfClosing) == 0 &&
		len(s.SingleLine) == 0 && len(s.Boolean) == 0
}

// RendererOptions maps the configuration to renderer options.
func (c *Config) RendererOptions() ([]tags.Option, error) {
	t, err := c.TagTables()
	if err != nil {
		return nil, err
	}
	return []tags.Option{
		tags.WithXHTML(c.Tags.XHTML),
		tags.WithNewlines(c.Tags.AddNewlines),
		tags.WithTables(t),
	}, nil
}

// Renderer builds a renderer from the configuration. extra options are
// applied after the configured ones.
func (c *Config) Renderer(extra ...tags.Option) (*tags.Renderer, error) {
	opts, err := c.RendererOptions()
	if err != nil {
		return nil, err
	}
	return tags.NewRenderer(append(opts, extra...)...), nil
}

// Address returns the host:port string for the preview server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}
