package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultName          = "config"
	defaultPort          = 8080
	defaultTimezone      = "UTC"
	defaultMaxUploadSize = 5 << 20
)

// Config agrupa toda la configuración del servicio.
// Se carga desde config/<name>.yaml y se puede sobreescribir con env vars
// (HTTP_PORT, POSTGRES_DSN, AUTH_JWTSECRET, ...).
type Config struct {
	Env struct {
		Name        string `json:"name" yaml:"name"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port           int   `json:"port" yaml:"port"`
		MaxRequestBody int64 `json:"maxRequestBody" yaml:"maxRequestBody"`
		Timeouts       struct {
			Read     time.Duration `json:"read" yaml:"read"`
			Write    time.Duration `json:"write" yaml:"write"`
			Idle     time.Duration `json:"idle" yaml:"idle"`
			Shutdown time.Duration `json:"shutdown" yaml:"shutdown"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"postgres" yaml:"postgres"`

	Auth      Auth      `json:"auth" yaml:"auth"`
	Bootstrap Bootstrap `json:"bootstrap" yaml:"bootstrap"`
	Business  Business  `json:"business" yaml:"business"`
	Storage   Storage   `json:"storage" yaml:"storage"`
	Redis     Redis     `json:"redis" yaml:"redis"`
	Kafka     Kafka     `json:"kafka" yaml:"kafka"`
	OTel      OTel      `json:"otel" yaml:"otel"`
}

type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Auth define cómo se verifican los tokens del proveedor de identidad.
// Mode: dev (header X-Debug-User-ID), jwt (HS256 local) o remote (endpoint del proveedor).
type Auth struct {
	Mode      string `json:"mode" yaml:"mode"`
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`
	Audience  string `json:"audience" yaml:"audience"`
	Remote    struct {
		BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
		APIKey  string        `json:"apiKey" yaml:"apiKey"`
		Timeout time.Duration `json:"timeout" yaml:"timeout"`
	} `json:"remote" yaml:"remote"`
}

type Bootstrap struct {
	AdminUserIDs []string `json:"adminUserIds" yaml:"adminUserIds"`
}

type Business struct {
	Timezone string `json:"timezone" yaml:"timezone"`
}

type Storage struct {
	// BucketURL es una URL de gocloud: mem:// o file:///path.
	BucketURL     string `json:"bucketUrl" yaml:"bucketUrl"`
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MaxUploadSize int64  `json:"maxUploadSize" yaml:"maxUploadSize"`
}

type Redis struct {
	Addr      string        `json:"addr" yaml:"addr"`
	Password  string        `json:"password" yaml:"password"`
	DB        int           `json:"db" yaml:"db"`
	RateLimit int           `json:"rateLimit" yaml:"rateLimit"`
	Window    time.Duration `json:"window" yaml:"window"`
	FailOpen  bool          `json:"failOpen" yaml:"failOpen"`
}

type Kafka struct {
	Brokers string `json:"brokers" yaml:"brokers"`
	Topic   string `json:"topic" yaml:"topic"`
}

type OTel struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	Endpoint    string  `json:"endpoint" yaml:"endpoint"`
	SampleRatio float64 `json:"sampleRatio" yaml:"sampleRatio"`
}

// Location devuelve la zona horaria del negocio ("hoy" se calcula con ella).
func (b Business) Location() (*time.Location, error) {
	tz := strings.TrimSpace(b.Timezone)
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "load timezone %q", tz)
	}
	return loc, nil
}

// LoadWithEnv carga <name>.yaml via koanf y aplica overrides de entorno.
func LoadWithEnv[T any](name string, searchPaths ...string) (*T, error) {
	cfg := new(T)
	k := koanf.New(".")

	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}

	var configFile string
	for _, p := range searchPaths {
		candidate := filepath.Join(p, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			break
		}
	}
	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", name)
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	existing := k.Raw()

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, v string) (string, any) {
			// HTTP_PORT -> http.port, AUTH_JWTSECRET -> auth.jwtSecret
			return canonicalizeEnvKey(key, existing), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

// New carga la configuración por defecto. CONFIG_DIR permite apuntar a otro directorio.
func New() (*Config, error) {
	paths := []string{"config", "../config", "../../config", "."}
	if dir := strings.TrimSpace(os.Getenv("CONFIG_DIR")); dir != "" {
		paths = append([]string{dir}, paths...)
	}

	cfg, err := LoadWithEnv[Config](defaultName, paths...)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultPort
	}
	if c.HTTP.Timeouts.Read <= 0 {
		c.HTTP.Timeouts.Read = 5 * time.Second
	}
	if c.HTTP.Timeouts.Write <= 0 {
		c.HTTP.Timeouts.Write = 10 * time.Second
	}
	if c.HTTP.Timeouts.Shutdown <= 0 {
		c.HTTP.Timeouts.Shutdown = 10 * time.Second
	}
	if strings.TrimSpace(c.Auth.Mode) == "" {
		c.Auth.Mode = "dev"
	}
	if strings.TrimSpace(c.Storage.BucketURL) == "" {
		c.Storage.BucketURL = "mem://"
	}
	if c.Storage.MaxUploadSize <= 0 {
		c.Storage.MaxUploadSize = defaultMaxUploadSize
	}
	if strings.TrimSpace(c.Kafka.Topic) == "" {
		c.Kafka.Topic = "appointments.activity"
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (string, map[string]any, bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}
		child, _ := value.(map[string]any)
		return key, child, true
	}
	return "", nil, false
}

func normalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
