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
	"fmt"
	"strings"

	"jinr.ru/greenlab/go-mmio/pkg/log"
)

// counterGenerator emits the per-address access counters. Like the ROM
// generator it serves two registrations: "counter" produces the
// declarations, "reset_counter" the synchronous clears for the reset
// branch. The two outputs must differ even though one implementation
// produces both.
type counterGenerator struct {
	params *BarParams
}

func newCounterGenerator(params *BarParams) Generator {
	return &counterGenerator{params: params}
}

func (g *counterGenerator) Generate(construct Construct, op Op) (Fragment, error) {
	if op != OpRead && op != OpWrite {
		return Fragment{}, ErrInvalidOp{Op: op, Construct: construct}
	}
	var b strings.Builder
	switch construct {
	case ConstructCounter:
		g.declarations(&b, op)
	case ConstructResetCounter:
		g.resets(&b, op)
	default:
		log.Warning("Counter generator can not produce construct %q", construct)
	}
	return NewFragment(construct, op, g.params.Bar, b.String()), nil
}

// declarations emits one free-running counter per address, wide enough
// to index that address's value sequence.
func (g *counterGenerator) declarations(b *strings.Builder, op Op) {
	for _, addr := range g.params.Addresses(op) {
		fmt.Fprintf(b, "    bit [%d:0] %s;\n", addr.CounterWidth()-1, addr.CounterName(op))
	}
}

func (g *counterGenerator) resets(b *strings.Builder, op Op) {
	for _, addr := range g.params.Addresses(op) {
		fmt.Fprintf(b, "            %s <= '0;\n", addr.CounterName(op))
	}
}
