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

// romGenerator emits the lookup tables for a BAR. One generator serves
// two registrations: the "rom" tag produces the declarations, the
// "rom_init" tag the synthesis-time preloads for the same data.
type romGenerator struct {
	params *BarParams
}

func newRomGenerator(params *BarParams) Generator {
	return &romGenerator{params: params}
}

func (g *romGenerator) Generate(construct Construct, op Op) (Fragment, error) {
	if op != OpRead && op != OpWrite {
		return Fragment{}, ErrInvalidOp{Op: op, Construct: construct}
	}
	var b strings.Builder
	switch construct {
	case ConstructRom:
		g.declarations(&b, op)
	case ConstructRomInit:
		g.preloads(&b, op)
	default:
		log.Warning("ROM generator can not produce construct %q", construct)
	}
	return NewFragment(construct, op, g.params.Bar, b.String()), nil
}

// declarations emits one lookup table per address, ascending, sized to
// hold the address's value sequence and as wide as the widest value
// observed at that address.
func (g *romGenerator) declarations(b *strings.Builder, op Op) {
	for _, addr := range g.params.Addresses(op) {
		width := g.params.BitWidth(addr.Address)
		fmt.Fprintf(b, "    bit [%d:0] %s [0:%d];\n", width-1, addr.RomName(op), len(addr.Values)-1)
	}
}

// preloads emits the reset-time value assignments for each table row.
func (g *romGenerator) preloads(b *strings.Builder, op Op) {
	for _, addr := range g.params.Addresses(op) {
		name := addr.RomName(op)
		for i, value := range addr.Values {
			fmt.Fprintf(b, "            %s[%d] <= 32'h%s;\n", name, i, value)
		}
	}
}
