package main

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "time"

    "github.com/fsnotify/fsnotify"
    "github.com/samber/lo"
)

// defaultConfigPath is used when no -c flag is given.
const defaultConfigPath = "config.json"

var ErrInvalidConfig = errors.New("invalid config")

// defaultConfig matches the reference wiring: red, green and blue LEDs on
// header pins 11, 13 and 15, a 0.3 second unit and a 12 character word.
func defaultConfig() Config {
    return Config{
        Backend:       "sim",
        UnitMillis:    300,
        MaxWordLength: 12,
        Pins:          PinMap{Primary: 17, Secondary: 27, Invalid: 22},
        LogFile:       "events.log",
        Sidetone:      SidetoneConfig{Enabled: false, Frequency: 700},
        Alerts:        []AlertConfig{{Type: "log"}},
    }
}

// ConfigManager wraps the loaded configuration and a mutex for concurrent
// access.  The file is only ever read; a missing file means defaults.
type ConfigManager struct {
    mu   sync.RWMutex
    path string
    cfg  Config
}

// NewConfigManager returns a manager for the file at path.  Until Load
// succeeds, Get returns the defaults.
func NewConfigManager(path string) *ConfigManager {
    if path == "" {
        path = defaultConfigPath
    }
    return &ConfigManager{path: path, cfg: defaultConfig()}
}

// Path returns the file the manager reads.
func (cm *ConfigManager) Path() string {
    return cm.path
}

// Load reads configuration from disk.  Fields missing from the file keep
// their default values.  An invalid file leaves the current configuration
// untouched.
func (cm *ConfigManager) Load() error {
    cfg := defaultConfig()
    data, err := os.ReadFile(cm.path)
    switch {
    case os.IsNotExist(err):
        // Defaults only.  The file is not created: nothing is persisted.
    case err != nil:
        return fmt.Errorf("unable to read config: %w", err)
    default:
        // Unmarshal over the defaults; alerts are replaced, not merged.
        if err := json.Unmarshal(data, &cfg); err != nil {
            return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, cm.path, err)
        }
    }
    if err := Validate(cfg); err != nil {
        return err
    }
    cm.mu.Lock()
    cm.cfg = cfg
    cm.mu.Unlock()
    return nil
}

// Get returns a copy of the current configuration.  Callers must treat the
// returned Config as immutable.
func (cm *ConfigManager) Get() Config {
    cm.mu.RLock()
    defer cm.mu.RUnlock()
    return cm.cfg
}

// Validate reports every problem with cfg, each wrapping ErrInvalidConfig.
func Validate(cfg Config) error {
    var errs []error
    if cfg.Backend != "sim" && cfg.Backend != "gpio" {
        errs = append(errs, fmt.Errorf("%w: backend must be \"sim\" or \"gpio\", got %q", ErrInvalidConfig, cfg.Backend))
    }
    if cfg.UnitMillis <= 0 {
        errs = append(errs, fmt.Errorf("%w: unit_ms must be positive, got %d", ErrInvalidConfig, cfg.UnitMillis))
    }
    if cfg.MaxWordLength <= 0 {
        errs = append(errs, fmt.Errorf("%w: max_word_length must be positive, got %d", ErrInvalidConfig, cfg.MaxWordLength))
    }
    pins := cfg.Pins.All()
    if lo.SomeBy(pins, func(p int) bool { return p < 0 }) {
        errs = append(errs, fmt.Errorf("%w: pins must not be negative: %v", ErrInvalidConfig, pins))
    }
    if len(lo.Uniq(pins)) != len(pins) {
        errs = append(errs, fmt.Errorf("%w: pins must be distinct: %v", ErrInvalidConfig, pins))
    }
    for _, ac := range cfg.Alerts {
        if _, ok := alertTypes[strings.ToLower(ac.Type)]; !ok {
            errs = append(errs, fmt.Errorf("%w: unknown alert type %q", ErrInvalidConfig, ac.Type))
        }
    }
    return errors.Join(errs...)
}

// Watch reloads the file whenever it changes and passes each valid result
// to onChange.  Reload failures go to onError and the previous configuration
// stays in effect.  The directory is watched rather than the file so that
// editors which replace the file on save are handled.  Watching stops when
// ctx is cancelled.
func (cm *ConfigManager) Watch(ctx context.Context, onChange func(Config), onError func(error)) error {
    fsw, err := fsnotify.NewWatcher()
    if err != nil {
        return fmt.Errorf("failed to create fsnotify watcher: %w", err)
    }
    dir := filepath.Dir(cm.path)
    if err := fsw.Add(dir); err != nil {
        fsw.Close()
        return fmt.Errorf("failed to watch %s: %w", dir, err)
    }
    base := filepath.Base(cm.path)
    go func() {
        defer fsw.Close()
        for {
            select {
            case <-ctx.Done():
                return
            case event, ok := <-fsw.Events:
                if !ok {
                    return
                }
                if filepath.Base(event.Name) != base {
                    continue
                }
                if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
                    continue
                }
                // Small delay to ensure file is fully written
                select {
                case <-ctx.Done():
                    return
                case <-time.After(50 * time.Millisecond):
                }
                if err := cm.Load(); err != nil {
                    onError(err)
                    continue
                }
                onChange(cm.Get())
            case err, ok := <-fsw.Errors:
                if !ok {
                    return
                }
                onError(err)
            }
        }
    }()
    return nil
}
