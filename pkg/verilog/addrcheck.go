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

// addressesPerCaseLine is how many matching addresses are grouped on
// one case label line.
const addressesPerCaseLine = 8

// addrCheckGenerator emits the comparator functions gating the read
// and write response paths: a case over all known addresses of the
// direction, returning 1'b1 on a match.
type addrCheckGenerator struct {
	params *BarParams
}

func newAddrCheckGenerator(params *BarParams) Generator {
	return &addrCheckGenerator{params: params}
}

// CheckName is the comparator function name for a direction, e.g.
// read_addr_check.
func CheckName(op Op) string {
	return string(op) + "_addr_check"
}

func (g *addrCheckGenerator) Generate(construct Construct, op Op) (Fragment, error) {
	if op != OpRead && op != OpWrite {
		return Fragment{}, ErrInvalidOp{Op: op, Construct: construct}
	}
	if construct != ConstructAddrCheck {
		log.Warning("Address check generator can not produce construct %q", construct)
		return NewFragment(construct, op, g.params.Bar, ""), nil
	}

	addrs := g.params.Addresses(op)
	if len(addrs) == 0 {
		return NewFragment(construct, op, g.params.Bar, ""), nil
	}

	name := CheckName(op)
	var b strings.Builder
	fmt.Fprintf(&b, "    function %s;\n", name)
	b.WriteString("        input [19:0] addr;\n")
	b.WriteString("        begin\n")
	b.WriteString("            case (addr)\n")
	for i := 0; i < len(addrs); i += addressesPerCaseLine {
		end := i + addressesPerCaseLine
		if end > len(addrs) {
			end = len(addrs)
		}
		b.WriteString("                ")
		for j, addr := range addrs[i:end] {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "20'h%s", addr.Address)
		}
		if end < len(addrs) {
			b.WriteString(",\n")
		} else {
			b.WriteString(":\n")
		}
	}
	fmt.Fprintf(&b, "                    %s = 1'b1;\n", name)
	fmt.Fprintf(&b, "                default: %s = 1'b0;\n", name)
	b.WriteString("            endcase\n")
	b.WriteString("        end\n")
	b.WriteString("    endfunction\n")

	return NewFragment(construct, op, g.params.Bar, b.String()), nil
}
