package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyArchitecture   = "training.architecture"
	keyDimensions     = "training.dimensions"
	keyWindow         = "training.window"
	keyMinCount       = "training.min_count"
	keyNegative       = "training.negative"
	keyEpochs         = "training.epochs"
	keyAlpha          = "training.alpha"
	keyMinAlpha       = "training.min_alpha"
	keySampleExponent = "training.sample_exponent"
	keySample         = "training.sample"
	keyWorkers        = "training.workers"
	keySeed           = "training.seed"
	keyModelPath      = "model.path"
	keyDataDir        = "data.dir"
	keyMinTokenLen    = "preprocess.min_token_length"
	keyMaxTokenLen    = "preprocess.max_token_length"
	keyServerPort     = "server.port"
	keyRateLimit      = "server.rate_limit"
	keyBurst          = "server.burst"
	keyVerbose        = "log.verbose"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

var settingKinds = map[string]valueKind{
	keyArchitecture:   kindString,
	keyDimensions:     kindInt,
	keyWindow:         kindInt,
	keyMinCount:       kindInt,
	keyNegative:       kindInt,
	keyEpochs:         kindInt,
	keyAlpha:          kindFloat,
	keyMinAlpha:       kindFloat,
	keySampleExponent: kindFloat,
	keySample:         kindFloat,
	keyWorkers:        kindInt,
	keySeed:           kindInt,
	keyModelPath:      kindString,
	keyDataDir:        kindString,
	keyMinTokenLen:    kindInt,
	keyMaxTokenLen:    kindInt,
	keyServerPort:     kindInt,
	keyRateLimit:      kindFloat,
	keyBurst:          kindInt,
	keyVerbose:        kindBool,
}

// Default file locations under the application directory.
const (
	DefaultModelFile = "models/wordspace.wsp"
	DefaultDataDir   = "data"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	baseDir     string
}

// NewSettingsService creates a new settings service. Relative model and
// data paths resolve against baseDir.
func NewSettingsService(configStore driven.ConfigStore, baseDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		baseDir:     baseDir,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Training: domain.Hyperparameters{
			Architecture:   s.getArchitecture(d.Training.Architecture),
			Dimensions:     s.getInt(keyDimensions, d.Training.Dimensions),
			Window:         s.getInt(keyWindow, d.Training.Window),
			MinCount:       s.getInt(keyMinCount, d.Training.MinCount),
			Negative:       s.getInt(keyNegative, d.Training.Negative),
			Epochs:         s.getInt(keyEpochs, d.Training.Epochs),
			Alpha:          s.getFloat(keyAlpha, d.Training.Alpha),
			MinAlpha:       s.getFloat(keyMinAlpha, d.Training.MinAlpha),
			SampleExponent: s.getFloat(keySampleExponent, d.Training.SampleExponent),
			Sample:         s.getFloat(keySample, d.Training.Sample),
			Workers:        s.getInt(keyWorkers, d.Training.Workers),
			Seed:           uint64(s.getInt(keySeed, int(d.Training.Seed))),
		},
		ModelPath: s.resolve(s.getString(keyModelPath, DefaultModelFile)),
		DataDir:   s.resolve(s.getString(keyDataDir, DefaultDataDir)),
		Preprocess: domain.PreprocessSettings{
			MinTokenLength: s.getInt(keyMinTokenLen, d.Preprocess.MinTokenLength),
			MaxTokenLength: s.getInt(keyMaxTokenLen, d.Preprocess.MaxTokenLength),
		},
		Server: domain.ServerSettings{
			Port:      s.getInt(keyServerPort, d.Server.Port),
			RateLimit: s.getFloat(keyRateLimit, d.Server.RateLimit),
			Burst:     s.getInt(keyBurst, d.Server.Burst),
		},
		Verbose: s.getBool(keyVerbose, d.Verbose),
	}

	return settings, nil
}

// Set parses value according to the key's type, validates the resulting
// settings and persists the change. Invalid values are rolled back.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if key == keyArchitecture && !domain.Architecture(strings.ToLower(value)).IsValid() {
		return fmt.Errorf("%w: architecture %q", domain.ErrInvalidInput, value)
	}

	previous, had := s.configStore.Get(key)
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	if err := s.Validate(); err != nil {
		if had {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Delete(key)
		}
		return err
	}
	return nil
}

// Reset removes every stored setting so defaults apply.
func (s *SettingsService) Reset() error {
	for _, key := range s.Keys() {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the effective value of every recognised key.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	t := settings.Training
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		keyArchitecture:   string(t.Architecture),
		keyDimensions:     strconv.Itoa(t.Dimensions),
		keyWindow:         strconv.Itoa(t.Window),
		keyMinCount:       strconv.Itoa(t.MinCount),
		keyNegative:       strconv.Itoa(t.Negative),
		keyEpochs:         strconv.Itoa(t.Epochs),
		keyAlpha:          f(t.Alpha),
		keyMinAlpha:       f(t.MinAlpha),
		keySampleExponent: f(t.SampleExponent),
		keySample:         f(t.Sample),
		keyWorkers:        strconv.Itoa(t.Workers),
		keySeed:           strconv.FormatUint(t.Seed, 10),
		keyModelPath:      settings.ModelPath,
		keyDataDir:        settings.DataDir,
		keyMinTokenLen:    strconv.Itoa(settings.Preprocess.MinTokenLength),
		keyMaxTokenLen:    strconv.Itoa(settings.Preprocess.MaxTokenLength),
		keyServerPort:     strconv.Itoa(settings.Server.Port),
		keyRateLimit:      f(settings.Server.RateLimit),
		keyBurst:          strconv.Itoa(settings.Server.Burst),
		keyVerbose:        strconv.FormatBool(settings.Verbose),
	}, nil
}

// Validate checks the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Training.Validate(); err != nil {
		return err
	}
	p := settings.Preprocess
	if p.MinTokenLength < 1 || p.MaxTokenLength < p.MinTokenLength {
		return fmt.Errorf("%w: token length bounds [%d, %d]", domain.ErrInvalidInput, p.MinTokenLength, p.MaxTokenLength)
	}
	if settings.Server.Port < 0 || settings.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", domain.ErrInvalidInput, settings.Server.Port)
	}
	if settings.Server.RateLimit < 0 || settings.Server.Burst < 0 {
		return fmt.Errorf("%w: rate limit and burst must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func parseSetting(kind valueKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		return strconv.ParseInt(value, 10, 64)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}

func (s *SettingsService) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.baseDir == "" {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getArchitecture(defaultVal domain.Architecture) domain.Architecture {
	val := s.configStore.GetString(keyArchitecture)
	if val == "" {
		return defaultVal
	}
	arch := domain.Architecture(strings.ToLower(val))
	if !arch.IsValid() {
		return defaultVal
	}
	return arch
}
