/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"os"
	"path/filepath"
)

// Options controls what the module builder emits. All toggles default
// to true, the operation filter defaults to both directions and an
// empty BAR selection means all BARs discovered in the trace.
type Options struct {
	BarSelection         []int  `yaml:"bar_selection,omitempty"`
	OperationFilter      string `yaml:"operation_filter"`
	IncludeAddressChecks bool   `yaml:"include_address_checks"`
	IncludeCounters      bool   `yaml:"include_counters"`
	IncludeDefaultValues bool   `yaml:"include_default_values"`
	IncludeLogic         bool   `yaml:"include_logic"`
	IncludeStateMachines bool   `yaml:"include_state_machines"`
	InitRoms             bool   `yaml:"init_roms"`
}

// Validate must be called before the options are handed to the module
// builder. A bad operation filter or BAR selection is fatal here, not
// somewhere in the middle of generation.
func (o *Options) Validate() error {
	switch o.OperationFilter {
	case OpFilterRead, OpFilterWrite, OpFilterBoth:
	default:
		return ErrInvalidOperationFilter{Filter: o.OperationFilter}
	}
	for _, bar := range o.BarSelection {
		if bar < 0 {
			return ErrInvalidBarSelection{Bar: bar}
		}
	}
	return nil
}

// GenerateRead reports whether the filter allows read-side constructs.
func (o *Options) GenerateRead() bool {
	return o.OperationFilter == OpFilterRead || o.OperationFilter == OpFilterBoth
}

// GenerateWrite reports whether the filter allows write-side constructs.
func (o *Options) GenerateWrite() bool {
	return o.OperationFilter == OpFilterWrite || o.OperationFilter == OpFilterBoth
}

func NewDefaultOptions() *Options {
	return &Options{
		OperationFilter:      OpFilterBoth,
		IncludeAddressChecks: true,
		IncludeCounters:      true,
		IncludeDefaultValues: true,
		IncludeLogic:         true,
		IncludeStateMachines: true,
		InitRoms:             true,
	}
}

type VerilogConfig struct {
	ModuleName string `yaml:"module_name"`
}

type ApiConfig struct {
	Address string `yaml:"address,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

type Config struct {
	LogLevel       string `yaml:"log_level,omitempty"`
	*VerilogConfig `yaml:"verilog,omitempty"`
	*Options       `yaml:"generate,omitempty"`
	*ApiConfig     `yaml:"api,omitempty"`
	filepath       string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file over the defaults. A missing file is not
// an error, the defaults simply stand.
func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Options.Validate()
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

// TraceDBPath is where the parsed trace store lives.
func (c *Config) TraceDBPath() string {
	return filepath.Join(filepath.Dir(c.filepath), TraceDBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		VerilogConfig: &VerilogConfig{
			ModuleName: DefaultModuleName,
		},
		Options: NewDefaultOptions(),
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		filepath: DefaultConfigPath(),
	}
}
