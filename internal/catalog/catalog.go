// Package catalog holds the static data model: the scripted conversation
// library, trust signals, caption settings and colour tokens. It is read
// once at startup; nothing here changes at runtime.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/voicemode/internal/captions"
	"github.com/hammamikhairi/voicemode/internal/domain"
)

//go:embed data.yaml
var defaultData []byte

// Catalog is the decoded data model.
type Catalog struct {
	Name          string                `yaml:"name"`
	Version       string                `yaml:"version"`
	Toast         Toast                 `yaml:"toast"`
	Captions      captions.Config       `yaml:"captions"`
	Theme         Theme                 `yaml:"theme"`
	TrustSignals  []domain.TrustSignal  `yaml:"trust_signals"`
	Conversations []domain.Conversation `yaml:"conversations"`
}

// Toast configures trust-signal toasts.
type Toast struct {
	DurationMS int `yaml:"duration_ms"`
}

// Theme holds colour tokens as hex strings.
type Theme struct {
	Background      string  `yaml:"background"`
	Foreground      string  `yaml:"foreground"`
	Muted           string  `yaml:"muted"`
	Surface         string  `yaml:"surface"`
	Drawer          string  `yaml:"drawer"`
	Accent          string  `yaml:"accent"`
	LowConfidence   string  `yaml:"low_confidence"`
	ToastBackground string  `yaml:"toast_background"`
	ToastInfo       string  `yaml:"toast_info"`
	ToastSuccess    string  `yaml:"toast_success"`
	Buttons         Buttons `yaml:"buttons"`
	Modal           string  `yaml:"modal"`
}

// Buttons holds the voice-screen control colours.
type Buttons struct {
	CCOn  string `yaml:"cc_on"`
	CCOff string `yaml:"cc_off"`
	Pause string `yaml:"pause"`
	Exit  string `yaml:"exit"`
}

// Default decodes the embedded data model.
func Default() (*Catalog, error) {
	return Decode(bytes.NewReader(defaultData))
}

// Load decodes a data model from a YAML file on disk.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads, defaults and validates a data model.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing data model: %w", err)
	}

	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) setDefaults() {
	if c.Toast.DurationMS <= 0 {
		c.Toast.DurationMS = 2500
	}
	c.Captions = c.Captions.WithDefaults()
	for i := range c.Conversations {
		for j := range c.Conversations[i].Turns {
			t := &c.Conversations[i].Turns[j]
			if t.Displayed == "" {
				t.Displayed = t.Spoken
			}
		}
	}
}

// Validate checks ids are unique and confidences are in range. An empty
// conversation list is allowed; starting a session then fails safe.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for i, conv := range c.Conversations {
		if conv.ID == "" {
			return fmt.Errorf("conversation %d has no id: %w", i, domain.ErrInvalidData)
		}
		if seen[conv.ID] {
			return fmt.Errorf("conversation %q: %w", conv.ID, domain.ErrDuplicateID)
		}
		seen[conv.ID] = true
		for _, t := range conv.Turns {
			if t.Confidence < 0 || t.Confidence > 1 {
				return fmt.Errorf("turn %s/%s: %w", conv.ID, t.ID, domain.ErrInvalidConfidence)
			}
		}
	}

	triggers := make(map[domain.Trigger]bool)
	for _, s := range c.TrustSignals {
		if triggers[s.Trigger] {
			return fmt.Errorf("trust signal trigger %q: %w", s.Trigger, domain.ErrDuplicateID)
		}
		triggers[s.Trigger] = true
	}
	return nil
}

// Signals returns the trigger lookup table.
func (c *Catalog) Signals() map[domain.Trigger]domain.TrustSignal {
	out := make(map[domain.Trigger]domain.TrustSignal, len(c.TrustSignals))
	for _, s := range c.TrustSignals {
		out[s.Trigger] = s
	}
	return out
}

// ToastDuration returns how long a trust signal stays visible.
func (c *Catalog) ToastDuration() time.Duration {
	return time.Duration(c.Toast.DurationMS) * time.Millisecond
}
