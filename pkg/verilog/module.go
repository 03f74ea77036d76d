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

package verilog

import (
	"sort"
	"strings"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/log"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

// ModuleBuilder assembles one complete Verilog module per selected BAR
// by walking the enabled features in fixed order and concatenating the
// registry's fragments. It performs no I/O: the result is handed back
// as one text value.
type ModuleBuilder struct {
	registry *Registry
	options  *config.Options
}

// NewModuleBuilder validates the options and prepares a builder over
// one register data snapshot. Option validation happens here, before
// any generation begins.
func NewModuleBuilder(data trace.BarData, moduleName string, opts *config.Options) (*ModuleBuilder, error) {
	if opts == nil {
		opts = config.NewDefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &ModuleBuilder{
		registry: NewRegistry(data, moduleName, opts),
		options:  opts,
	}, nil
}

// Registry exposes the builder's registry for direct build requests.
func (b *ModuleBuilder) Registry() *Registry {
	return b.registry
}

// Build generates the module text for every selected BAR in ascending
// index order. BARs missing from the register data are skipped with a
// warning. A fatal failure in one BAR (duplicate addresses, invalid
// fragments) omits that BAR's output and is surfaced to the caller
// after the remaining BARs have been generated.
func (b *ModuleBuilder) Build() (string, error) {
	bars := b.selectBars()

	var out strings.Builder
	var failure error
	for _, bar := range bars {
		if !b.registry.HasBar(bar) {
			log.Warning("BAR %d not found in register data, skipping", bar)
			continue
		}
		text, err := b.buildBar(bar)
		if err != nil {
			log.Error("Generation failed for BAR %d: %s", bar, err)
			if failure == nil {
				failure = err
			}
			continue
		}
		out.WriteString(text)
	}
	return out.String(), failure
}

func (b *ModuleBuilder) selectBars() []int {
	if len(b.options.BarSelection) == 0 {
		return b.registry.Bars()
	}
	bars := make([]int, len(b.options.BarSelection))
	copy(bars, b.options.BarSelection)
	sort.Ints(bars)
	return bars
}

// buildBar emits one BAR's sections in the fixed order: header, ROMs,
// counters, address checks, state machine prologue, counter resets,
// ROM preloads, response logic, state machine epilogue.
func (b *ModuleBuilder) buildBar(bar int) (string, error) {
	var sections []string

	add := func(op Op, construct Construct) error {
		text, err := b.registry.Build(op, bar, construct)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) != "" {
			sections = append(sections, text)
		}
		return nil
	}

	// per construct, read before write, as the operation filter allows
	both := func(construct Construct) error {
		if b.options.GenerateRead() {
			if err := add(OpRead, construct); err != nil {
				return err
			}
		}
		if b.options.GenerateWrite() {
			if err := add(OpWrite, construct); err != nil {
				return err
			}
		}
		return nil
	}

	if err := add(OpNone, ConstructHeader); err != nil {
		return "", err
	}
	if err := both(ConstructRom); err != nil {
		return "", err
	}
	if b.options.IncludeCounters {
		if err := both(ConstructCounter); err != nil {
			return "", err
		}
	}
	if b.options.IncludeAddressChecks {
		if err := both(ConstructAddrCheck); err != nil {
			return "", err
		}
	}
	if b.options.IncludeStateMachines {
		if err := add(OpNone, ConstructStateMachineStart); err != nil {
			return "", err
		}
	}
	if b.options.IncludeCounters {
		if err := both(ConstructResetCounter); err != nil {
			return "", err
		}
	}
	if b.options.InitRoms {
		if err := both(ConstructRomInit); err != nil {
			return "", err
		}
	}
	if b.options.IncludeLogic {
		// the read-side fragment carries the request pipeline, so it
		// is requested regardless of the operation filter
		if err := add(OpRead, ConstructLogic); err != nil {
			return "", err
		}
		if b.options.GenerateWrite() {
			if err := add(OpWrite, ConstructLogic); err != nil {
				return "", err
			}
		}
	}
	if b.options.IncludeStateMachines {
		if err := add(OpNone, ConstructStateMachineEnd); err != nil {
			return "", err
		}
	}
	sections = append(sections, "endmodule\n")

	return strings.Join(sections, "\n"), nil
}
