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
	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/log"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

// generatorKey is the descriptor a generator instance is cached under.
type generatorKey struct {
	construct Construct
	bar       int
}

// Registry maps the closed set of construct tags to generator
// factories and dispatches build requests. It lives for exactly one
// module generation run: construct it, build, discard.
type Registry struct {
	factories map[Construct]Factory
	instances map[generatorKey]Generator
	params    map[int]*BarParams

	data       trace.BarData
	moduleName string
	options    *config.Options
}

// NewRegistry builds a registry over one read-only register data
// snapshot with all construct tags registered.
func NewRegistry(data trace.BarData, moduleName string, opts *config.Options) *Registry {
	r := &Registry{
		factories:  make(map[Construct]Factory),
		instances:  make(map[generatorKey]Generator),
		params:     make(map[int]*BarParams),
		data:       data,
		moduleName: moduleName,
		options:    opts,
	}

	r.Register(ConstructRom, newRomGenerator)
	r.Register(ConstructRomInit, newRomGenerator)
	r.Register(ConstructCounter, newCounterGenerator)
	r.Register(ConstructResetCounter, newCounterGenerator)
	r.Register(ConstructAddrCheck, newAddrCheckGenerator)
	r.Register(ConstructLogic, newLogicGenerator)
	r.Register(ConstructHeader, newStaticGenerator)
	r.Register(ConstructStateMachineStart, newStaticGenerator)
	r.Register(ConstructStateMachineEnd, newStaticGenerator)

	return r
}

func (r *Registry) Register(construct Construct, factory Factory) {
	r.factories[construct] = factory
}

// Bars returns the BAR indices present in the register data, ascending.
func (r *Registry) Bars() []int {
	return r.data.Bars()
}

// HasBar reports whether register data exists for a BAR.
func (r *Registry) HasBar(bar int) bool {
	return len(r.data[bar]) > 0
}

func (r *Registry) barParams(bar int) (*BarParams, error) {
	if params, ok := r.params[bar]; ok {
		return params, nil
	}
	entries, ok := r.data[bar]
	if !ok || len(entries) == 0 {
		return nil, ErrMissingBarData{Bar: bar}
	}
	params, err := NewBarParams(bar, entries, r.moduleName, r.options)
	if err != nil {
		return nil, err
	}
	r.params[bar] = params
	return params, nil
}

// Build dispatches one build request. An unknown construct tag is not
// an error: it is logged and yields empty text so a missing optional
// feature never aborts an otherwise valid build. Structural failures
// (bad operation, duplicate addresses, empty scaffolding) are returned
// to the caller.
func (r *Registry) Build(op Op, bar int, construct Construct) (string, error) {
	if !op.valid() || (op == OpNone && !construct.directionFree()) {
		return "", ErrInvalidOp{Op: op, Construct: construct}
	}

	factory, ok := r.factories[construct]
	if !ok {
		log.Warning("%s", ErrUnregisteredConstruct{Construct: construct})
		return "", nil
	}

	params, err := r.barParams(bar)
	if err != nil {
		return "", err
	}

	key := generatorKey{construct: construct, bar: bar}
	generator, ok := r.instances[key]
	if !ok {
		generator = factory(params)
		r.instances[key] = generator
	}

	fragment, err := generator.Generate(construct, op)
	if err != nil {
		return "", err
	}
	if construct.mustProduce() && fragment.Empty() {
		return "", ErrEmptyFragment{Construct: construct, Bar: bar}
	}
	return fragment.Text(), nil
}
