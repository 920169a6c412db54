package relayconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/relaylog"
)

// Config is the root of a relayctl YAML cohort description.
type Config struct {
	Play      string        `yaml:"play"`
	Transport TransportSpec `yaml:"transport"`
	Log       LogSpec       `yaml:"log"`
	Queues    []QueueSpec   `yaml:"queues"`
}

// TransportSpec selects and configures the bus.Transport relayctl connects.
// Kind is "memory" (default) or "nats"; URL is only used for "nats".
type TransportSpec struct {
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

// LogSpec configures relaylog.Init.
type LogSpec struct {
	Level relaylog.Level `yaml:"level"`
	JSON  bool           `yaml:"json"`
}

// QueueSpec is the YAML form of one bus.QueueDescriptor. relayctl's demo
// cohort runs no consumer actor and does not read Config.Queues.
type QueueSpec struct {
	Name              string             `yaml:"name"`
	Stream            string             `yaml:"stream"`
	Filters           []string           `yaml:"filters"`
	MaxPending        int                `yaml:"maxPending"`
	MaxWait           Duration           `yaml:"maxWait"`
	InactiveThreshold Duration           `yaml:"inactiveThreshold"`
	DeliveryPolicy    bus.DeliveryPolicy `yaml:"deliveryPolicy"`
}

// QueueDescriptor converts a QueueSpec into the bus.QueueDescriptor Pull
// expects.
func (q QueueSpec) QueueDescriptor() bus.QueueDescriptor {
	return bus.QueueDescriptor{
		Name:              q.Name,
		Stream:            q.Stream,
		Filters:           q.Filters,
		MaxPending:        q.MaxPending,
		MaxWait:           time.Duration(q.MaxWait),
		InactiveThreshold: time.Duration(q.InactiveThreshold),
		DeliveryPolicy:    q.DeliveryPolicy,
	}
}

// Duration unmarshals a YAML scalar like "30s" via time.ParseDuration,
// since yaml.v3 has no native notion of a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("relayconfig: duration: %w", err)
	}
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("relayconfig: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load reads and parses a cohort description, applying defaults for an
// unset transport kind and log level.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("relayconfig: read %q: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("relayconfig: parse %q: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Play == "" {
		c.Play = "relayctl"
	}
	if c.Transport.Kind == "" {
		c.Transport.Kind = "memory"
	}
	if c.Log.Level == "" {
		c.Log.Level = relaylog.InfoLevel
	}
}
