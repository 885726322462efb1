// Package config provides configuration loading for the agriview analyzer.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Input   InputData       `yaml:"input"`
	Output  OutputData      `yaml:"output,omitempty"`
	Soil    SoilData        `yaml:"soil,omitempty"`
	Phases  []PhaseRuleData `yaml:"phases,omitempty"`
	Archive *ArchiveData    `yaml:"archive,omitempty"`
	Server  *ServerData     `yaml:"server,omitempty"`
}

// InputData locates the exported simulation log
type InputData struct {
	File string `yaml:"file"`
}

// OutputData holds report and chart-data destinations
type OutputData struct {
	Dir        string `yaml:"dir,omitempty"`
	ReportFile string `yaml:"report_file,omitempty"`
}

// SoilData holds the water-retention constants used for depletion
type SoilData struct {
	ThetaFC  float64 `yaml:"theta_fc,omitempty"`
	ThetaPWP float64 `yaml:"theta_pwp,omitempty"`
}

// PhaseRuleData classifies phase names by substring match
type PhaseRuleData struct {
	Substrings []string `yaml:"substrings"`
	Category   string   `yaml:"category"`
	Color      string   `yaml:"color,omitempty"`
}

// ArchiveData configures the optional SQLite sample archive
type ArchiveData struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days,omitempty"`
}

// ServerData configures the optional results HTTP server
type ServerData struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
}

// Default returns the configuration used when no config file is given:
// the AgriScan dashboard soil constants and the conventional file names.
func Default() *ConfigData {
	return &ConfigData{
		Input:  InputData{File: "simulation_logs.json"},
		Output: OutputData{Dir: ".", ReportFile: "simulation_report.txt"},
		Soil:   SoilData{ThetaFC: 0.35, ThetaPWP: 0.15},
	}
}

// applyDefaults fills unset fields in-place.
func applyDefaults(c *ConfigData) {
	def := Default()
	if c.Input.File == "" {
		c.Input.File = def.Input.File
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Output.ReportFile == "" {
		c.Output.ReportFile = def.Output.ReportFile
	}
	if c.Soil.ThetaFC == 0 && c.Soil.ThetaPWP == 0 {
		c.Soil = def.Soil
	}
	if c.Server != nil {
		if c.Server.ListenAddr == "" {
			c.Server.ListenAddr = "127.0.0.1"
		}
		if c.Server.Port == 0 {
			c.Server.Port = 8090
		}
	}
}
