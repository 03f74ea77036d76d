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

package build

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mmio/pkg/command"
	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/srv"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
	"jinr.ru/greenlab/go-mmio/pkg/verilog"
)

const (
	InputOptionName         = "input"
	DBOptionName            = "db"
	OutputOptionName        = "output"
	ModuleNameOptionName    = "module-name"
	BarsOptionName          = "bars"
	OperationOptionName     = "operation"
	AddrChecksOptionName    = "addr-checks"
	CountersOptionName      = "counters"
	DefaultValuesOptionName = "default-values"
	LogicOptionName         = "logic"
	StateMachinesOptionName = "state-machines"
	InitRomsOptionName      = "init-roms"
	RemoteOptionName        = "remote"
)

// NewCommand creates the command that generates the Verilog module,
// either from a trace file, from the local trace store or through the
// API server when --remote is given.
func NewCommand() *cobra.Command {
	var input, dbPath, output, moduleName, operation string
	var bars []int
	var addrChecks, counters, defaultValues, logic, stateMachines, initRoms, remote bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the Verilog module from a register trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cfg.Options
			if len(bars) > 0 {
				opts.BarSelection = bars
			}
			if operation != "" {
				opts.OperationFilter = operation
			}
			flags := cmd.Flags()
			if flags.Changed(AddrChecksOptionName) {
				opts.IncludeAddressChecks = addrChecks
			}
			if flags.Changed(CountersOptionName) {
				opts.IncludeCounters = counters
			}
			if flags.Changed(DefaultValuesOptionName) {
				opts.IncludeDefaultValues = defaultValues
			}
			if flags.Changed(LogicOptionName) {
				opts.IncludeLogic = logic
			}
			if flags.Changed(StateMachinesOptionName) {
				opts.IncludeStateMachines = stateMachines
			}
			if flags.Changed(InitRomsOptionName) {
				opts.InitRoms = initRoms
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			if moduleName != "" {
				cfg.VerilogConfig.ModuleName = moduleName
			}

			var module string
			if remote {
				apiClient := command.NewApiClient(cfg)
				remoteModule, err := apiClient.Build(&srv.BuildOptions{
					BarSelection:         opts.BarSelection,
					OperationFilter:      opts.OperationFilter,
					IncludeAddressChecks: &opts.IncludeAddressChecks,
					IncludeCounters:      &opts.IncludeCounters,
					IncludeDefaultValues: &opts.IncludeDefaultValues,
					IncludeLogic:         &opts.IncludeLogic,
					IncludeStateMachines: &opts.IncludeStateMachines,
					InitRoms:             &opts.InitRoms,
				})
				if err != nil {
					return err
				}
				module = remoteModule
			} else {
				data, err := loadBarData(cfg, input, dbPath)
				if err != nil {
					return err
				}
				builder, err := verilog.NewModuleBuilder(data, cfg.VerilogConfig.ModuleName, opts)
				if err != nil {
					return err
				}
				module, err = builder.Build()
				if err != nil {
					return err
				}
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), module)
				return nil
			}
			return ioutil.WriteFile(output, []byte(module), 0644)
		},
	}
	cmd.Flags().StringVar(&input, InputOptionName, "", "Path to the register trace file. When empty the trace store is used")
	cmd.Flags().StringVar(&dbPath, DBOptionName, "", "Path to the trace store")
	cmd.Flags().StringVar(&output, OutputOptionName, "", "Path of the generated Verilog file. Defaults to stdout")
	cmd.Flags().StringVar(&moduleName, ModuleNameOptionName, "", fmt.Sprintf("Module name suffix. E.g. %s", config.DefaultModuleName))
	cmd.Flags().IntSliceVar(&bars, BarsOptionName, nil, "BARs to generate. E.g. 0,1. Defaults to all BARs in the trace")
	cmd.Flags().StringVar(&operation, OperationOptionName, "", "Operations to generate. Must be one of: read, write, both")
	cmd.Flags().BoolVar(&addrChecks, AddrChecksOptionName, true, "Emit address check functions")
	cmd.Flags().BoolVar(&counters, CountersOptionName, true, "Emit read counters for multi-value registers")
	cmd.Flags().BoolVar(&defaultValues, DefaultValuesOptionName, true, "Use last observed values as case defaults")
	cmd.Flags().BoolVar(&logic, LogicOptionName, true, "Emit response logic")
	cmd.Flags().BoolVar(&stateMachines, StateMachinesOptionName, true, "Emit the request pipeline and state machine skeleton")
	cmd.Flags().BoolVar(&initRoms, InitRomsOptionName, true, "Emit ROM initialization on reset")
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Build through the API server instead of locally")
	return cmd
}

// loadBarData reads the trace either directly from a trace file or from
// the trace store populated by the parse command.
func loadBarData(cfg *config.Config, input, dbPath string) (trace.BarData, error) {
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return trace.Parse(f)
	}
	if dbPath == "" {
		dbPath = cfg.TraceDBPath()
	}
	state, err := srv.NewState(context.Background(), dbPath)
	if err != nil {
		return nil, err
	}
	defer state.Close()
	return state.BarData()
}
