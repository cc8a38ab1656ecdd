package config

const (
	defaultInputDir          = "/work/out"
	defaultOutputDir         = "/work/charts"
	defaultConverterDir      = "/app/midi-ch/auto"
	defaultStateDir          = "~/.local/share/chartsmith"
	defaultLogDir            = "~/.local/share/chartsmith/logs"
	defaultConvertTimeout    = 120
	defaultNavigationTimeout = 60
	defaultSeparator         = " - "
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 30

	envInputDir     = "INPUT_DIR"
	envOutputDir    = "OUTPUT_DIR"
	envConverterDir = "MIDI_CH_ROOT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:     defaultInputDir,
			OutputDir:    defaultOutputDir,
			ConverterDir: defaultConverterDir,
			StateDir:     defaultStateDir,
			LogDir:       defaultLogDir,
		},
		Browser: Browser{
			Headless:          true,
			NoSandbox:         true,
			DisableDevShm:     true,
			ConvertTimeout:    defaultConvertTimeout,
			NavigationTimeout: defaultNavigationTimeout,
		},
		Metadata: Metadata{
			Separator: defaultSeparator,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
