package file

import (
	"errors"
	"os"
	"sync"

	"github.com/myzx/gohelper/internal/config"
	"github.com/myzx/gohelper/internal/logging"
	"github.com/myzx/gohelper/pkg/http/client"
	"go.uber.org/zap"
)

// Op selects the behaviour of HandleFile and HandleDir.
type Op string

const (
	OpCopy Op = "copy"
	OpMove Op = "move"
)

var (
	ErrExists        = errors.New("file: target already exists")
	ErrNotExist      = errors.New("file: path does not exist")
	ErrUnsupportedOp = errors.New("file: unsupported operation")
)

// Config holds the permission bits used for created entries.
type Config struct {
	DirMode  os.FileMode `envconfig:"DIR_MODE" default:"0777"`
	FileMode os.FileMode `envconfig:"FILE_MODE" default:"0666"`
}

// DefaultConfig returns the modes used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DirMode:  0777,
		FileMode: 0666,
	}
}

// LoadConfig reads HELPER_FILE_* variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Process("FILE", &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Manager performs filesystem operations
type Manager struct {
	cfg    Config
	logger *logging.Logger
	http   *client.Client
	once   sync.Once
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger routes manager logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.Wrap(l)
	}
}

// WithHTTPClient sets the client used by DownRemoteFile.
func WithHTTPClient(c *client.Client) Option {
	return func(m *Manager) {
		m.http = c
	}
}

// WithConfig replaces the default modes.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// New creates a manager with default modes.
func New(opts ...Option) *Manager {
	m := &Manager{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = config.NewLogger()
	}
	return m
}

// NewFromEnv creates a manager configured from the environment.
func NewFromEnv(opts ...Option) (*Manager, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// Config returns the active configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

func (m *Manager) httpClient() *client.Client {
	m.once.Do(func() {
		if m.http == nil {
			m.http = client.Default(client.WithLogger(m.logger.Logger))
		}
	})
	return m.http
}
