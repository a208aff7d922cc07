package config

import "runtime"

const (
	defaultConfigPath    = "~/.config/simradio/config.toml"
	projectConfigName    = "simradio.toml"
	defaultCatalog       = "new_sim_radio_stations.json"
	defaultSourceDir     = "extracted"
	defaultOutputDir     = "converted_m4a"
	defaultLogDir        = "~/.local/share/simradio/logs"
	defaultJournalPath   = "~/.local/share/simradio/journal.db"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultCodec         = "libfdk_aac"
	defaultExtension     = "m4a"
	defaultStereoBitrate = "192k"
	defaultMonoBitrate   = "128k"
	defaultAnalysisTail  = 8.0
	defaultSilenceDB     = -14.0
	defaultMinSilence    = 0.5
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 20
	defaultLogMaxBackups = 5
	defaultLogMaxAgeDays = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Catalog:     defaultCatalog,
			SourceDir:   defaultSourceDir,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
			JournalPath: defaultJournalPath,
		},
		Catalog: Catalog{
			ExcludedDirs: []string{},
		},
		Conversion: Conversion{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Codec:         defaultCodec,
			Extension:     defaultExtension,
			StereoBitrate: defaultStereoBitrate,
			MonoBitrate:   defaultMonoBitrate,
			Workers:       runtime.NumCPU(),
		},
		Duration: Duration{
			AnalysisTailSeconds: defaultAnalysisTail,
			SilenceThresholdDB:  defaultSilenceDB,
			MinSilenceSeconds:   defaultMinSilence,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
		Journal: Journal{
			Enabled: true,
		},
	}
}
