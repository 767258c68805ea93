package config

const (
	defaultBaudRate      = 115200
	defaultReadTimeoutMS = 1000

	defaultLabel          = "Distance:"
	defaultWindowCapacity = 50

	defaultQueueSize = 1024

	defaultYMin     = 0
	defaultYMax     = 50
	defaultLogLines = 200

	defaultMockIntervalMS = 1000
	defaultMockBase       = 20
	defaultMockJitter     = 5
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Serial: SerialConfig{
			BaudRate:      defaultBaudRate,
			ReadTimeoutMS: defaultReadTimeoutMS,
		},
		Extract: ExtractConfig{
			Label:          defaultLabel,
			WindowCapacity: defaultWindowCapacity,
		},
		Stream: StreamConfig{
			QueueSize: defaultQueueSize,
		},
		Display: DisplayConfig{
			YMin:     defaultYMin,
			YMax:     defaultYMax,
			LogLines: defaultLogLines,
		},
		Mock: MockConfig{
			IntervalMS: defaultMockIntervalMS,
			Base:       defaultMockBase,
			Jitter:     defaultMockJitter,
		},
	}
}
