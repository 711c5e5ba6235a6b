package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every tuning constant of the scene. Load it with LoadConfig
// or start from DefaultConfig.
type Config struct {
	Width      float64 `yaml:"width" env:"FOLIO_WIDTH"`
	Height     float64 `yaml:"height" env:"FOLIO_HEIGHT"`
	Background float64 `yaml:"background" env:"FOLIO_BACKGROUND"` // gray level
	Debug      bool    `yaml:"debug" env:"FOLIO_DEBUG"`

	Camera   CameraConfig   `yaml:"camera"`
	Portrait PortraitConfig `yaml:"portrait"`
	Menu     MenuConfig     `yaml:"menu"`
	Back     BackConfig     `yaml:"back"`
	Hint     HintConfig     `yaml:"hint"`
}

// CameraConfig tunes the camera controller.
type CameraConfig struct {
	Smoothing float64 `yaml:"smoothing" env:"FOLIO_CAMERA_SMOOTHING"`
}

// PortraitConfig tunes the unlockable portrait.
type PortraitConfig struct {
	Radius      float64 `yaml:"radius" env:"FOLIO_PORTRAIT_RADIUS"`
	RingPadding float64 `yaml:"ring_padding"`
	Texture     string  `yaml:"texture"`

	Increment      float64 `yaml:"increment" env:"FOLIO_PORTRAIT_INCREMENT"`
	DrainTime      float64 `yaml:"drain_time" env:"FOLIO_PORTRAIT_DRAIN_TIME"`
	ShakeIntensity float64 `yaml:"shake_intensity" env:"FOLIO_PORTRAIT_SHAKE_INTENSITY"`
	ShakeDuration  float64 `yaml:"shake_duration" env:"FOLIO_PORTRAIT_SHAKE_DURATION"`

	TapSound     string `yaml:"tap_sound"`
	ExplodeSound string `yaml:"explode_sound"`

	PulseScale    float64 `yaml:"pulse_scale"`
	PulseDuration float64 `yaml:"pulse_duration"`
	RingPulseLag  float64 `yaml:"ring_pulse_lag"`

	ExplodeScale         float64 `yaml:"explode_scale"`
	ExplodeDuration      float64 `yaml:"explode_duration"`
	RingExplodeDelay     float64 `yaml:"ring_explode_delay"`
	PortraitExplodeDelay float64 `yaml:"portrait_explode_delay"`
	UnlockDelay          float64 `yaml:"unlock_delay"`

	RingWidth  float64 `yaml:"ring_width"`
	MeterWidth float64 `yaml:"meter_width"`
}

// MenuConfig tunes the menu option buttons and their choreography.
type MenuConfig struct {
	Labels      []string `yaml:"labels" env:"FOLIO_MENU_LABELS" envSeparator:","`
	Stagger     float64  `yaml:"stagger" env:"FOLIO_MENU_STAGGER"`
	SettleDelay float64  `yaml:"settle_delay" env:"FOLIO_MENU_SETTLE_DELAY"`

	OnScreenOffset  float64 `yaml:"on_screen_offset"`
	PresentDuration float64 `yaml:"present_duration"`
	DismissDuration float64 `yaml:"dismiss_duration"`
	SelectDelay     float64 `yaml:"select_delay"`
	SelectDuration  float64 `yaml:"select_duration"`
	ResetDuration   float64 `yaml:"reset_duration"`

	FontSize   float64 `yaml:"font_size"`
	LabelInset float64 `yaml:"label_inset"`
}

// BackConfig tunes the back button.
type BackConfig struct {
	Texture       string  `yaml:"texture"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Y             float64 `yaml:"y"`
	PresentDelay  float64 `yaml:"present_delay"`
	SlideDuration float64 `yaml:"slide_duration"`
}

// HintConfig places the label under the portrait.
type HintConfig struct {
	Text     string  `yaml:"text"`
	FontSize float64 `yaml:"font_size"`
	Y        float64 `yaml:"y"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Width:      375,
		Height:     667,
		Background: 0.5,
		Camera: CameraConfig{
			Smoothing: 0.1,
		},
		Portrait: PortraitConfig{
			Radius:               80,
			RingPadding:          1.075,
			Texture:              "jak",
			Increment:            0.125,
			DrainTime:            10,
			ShakeIntensity:       5,
			ShakeDuration:        0.25,
			TapSound:             "crunch.wav",
			ExplodeSound:         "zoom.wav",
			PulseScale:           0.925,
			PulseDuration:        3,
			RingPulseLag:         1,
			ExplodeScale:         8,
			ExplodeDuration:      0.33,
			RingExplodeDelay:     1,
			PortraitExplodeDelay: 1.5,
			UnlockDelay:          2.5,
			RingWidth:            0.25,
			MeterWidth:           1.5,
		},
		Menu: MenuConfig{
			Labels:          []string{"PROJECTS", "EDUCATION", "COMPANY", "ABOUT ME"},
			Stagger:         0.15,
			SettleDelay:     0.5,
			OnScreenOffset:  60,
			PresentDuration: 0.5,
			DismissDuration: 0.33,
			SelectDelay:     1,
			SelectDuration:  0.5,
			ResetDuration:   0.5,
			FontSize:        28,
			LabelInset:      50,
		},
		Back: BackConfig{
			Texture:       "back",
			Width:         60,
			Height:        60,
			Y:             180,
			PresentDelay:  1.5,
			SlideDuration: 0.33,
		},
		Hint: HintConfig{
			Text:     "tap rapidly",
			FontSize: 16,
			Y:        160,
		},
	}
}

// LoadConfig builds a Config from the defaults, the YAML file at path (if
// it exists; an empty path skips it) and FOLIO_* environment variables, in
// that order of precedence, then validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseEnv overrides cfg fields from FOLIO_* environment variables. Unset
// variables leave fields untouched.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: scene size %gx%g must be positive", c.Width, c.Height)
	case c.Camera.Smoothing < 0 || c.Camera.Smoothing > 1:
		return fmt.Errorf("config: camera smoothing %g outside [0, 1]", c.Camera.Smoothing)
	case c.Portrait.Radius <= 0:
		return fmt.Errorf("config: portrait radius %g must be positive", c.Portrait.Radius)
	case c.Portrait.DrainTime <= 0:
		return fmt.Errorf("config: portrait drain time %g must be positive", c.Portrait.DrainTime)
	case c.Portrait.Increment <= 0 || c.Portrait.Increment > 1:
		return fmt.Errorf("config: portrait increment %g outside (0, 1]", c.Portrait.Increment)
	case len(c.Menu.Labels) != 4:
		return fmt.Errorf("config: menu needs 4 labels, got %d", len(c.Menu.Labels))
	case c.Menu.Stagger < 0 || c.Menu.SettleDelay < 0:
		return errors.New("config: menu delays must not be negative")
	}
	return nil
}
