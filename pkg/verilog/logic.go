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

// requestPipeline transfers the incoming request signals through the
// delayed registers and drives the response handshake. It opens the
// non-reset branch of the state machine, so the read-side logic
// fragment carries it ahead of the case blocks.
const requestPipeline = `        end else begin
            drd_req_ctx     <= rd_req_ctx;
            drd_req_valid   <= rd_req_valid;
            dwr_valid       <= wr_valid;
            drd_req_addr    <= rd_req_addr;
            rd_rsp_ctx      <= drd_req_ctx;
            rd_rsp_valid    <= drd_req_valid;
            dwr_addr        <= wr_addr;
            dwr_data        <= wr_data;
`

// logicGenerator wires the ROM, counter and address check interfaces
// to the module's response signals. It depends only on the signal
// names of those constructs, not on their generated text.
type logicGenerator struct {
	params *BarParams
}

func newLogicGenerator(params *BarParams) Generator {
	return &logicGenerator{params: params}
}

func (g *logicGenerator) Generate(construct Construct, op Op) (Fragment, error) {
	if op != OpRead && op != OpWrite {
		return Fragment{}, ErrInvalidOp{Op: op, Construct: construct}
	}
	if construct != ConstructLogic {
		log.Warning("Response logic generator can not produce construct %q", construct)
		return NewFragment(construct, op, g.params.Bar, ""), nil
	}

	var b strings.Builder
	switch op {
	case OpRead:
		if g.params.Options == nil || g.params.Options.IncludeStateMachines {
			b.WriteString(requestPipeline)
		}
		if g.params.Options == nil || g.params.Options.GenerateRead() {
			g.readCases(&b)
		}
	case OpWrite:
		g.writeCases(&b)
	}
	return NewFragment(construct, op, g.params.Bar, b.String()), nil
}

func (g *logicGenerator) guard(op Op, valid string) string {
	if g.params.Options != nil && !g.params.Options.IncludeAddressChecks {
		return valid
	}
	addr := "local_read_addr"
	if op == OpWrite {
		addr = "local_write_addr"
	}
	return fmt.Sprintf("%s && %s(%s)", valid, CheckName(op), addr)
}

func (g *logicGenerator) withCounters() bool {
	return g.params.Options == nil || g.params.Options.IncludeCounters
}

func (g *logicGenerator) readCases(b *strings.Builder) {
	addrs := g.params.Addresses(OpRead)
	if len(addrs) == 0 {
		return
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "            if (%s) begin\n", g.guard(OpRead, "drd_req_valid"))
	b.WriteString("                case (local_read_addr)\n")
	for _, addr := range addrs {
		rom := addr.RomName(OpRead)
		if len(addr.Values) > 1 && g.withCounters() {
			counter := addr.CounterName(OpRead)
			width := addr.CounterWidth()
			fmt.Fprintf(b, "                    20'h%s: begin\n", addr.Address)
			fmt.Fprintf(b, "                        %s <= (%s == %d'd%d) ? %d'd0 : %s + 1;\n",
				counter, counter, width, len(addr.Values)-1, width, counter)
			fmt.Fprintf(b, "                        rd_rsp_data <= %s[%s];\n", rom, counter)
			b.WriteString("                    end\n")
		} else {
			fmt.Fprintf(b, "                    20'h%s: rd_rsp_data <= %s[0];\n", addr.Address, rom)
		}
	}
	fmt.Fprintf(b, "                    default: rd_rsp_data <= 32'h%s;\n", g.params.DefaultValue(OpRead))
	b.WriteString("                endcase\n")
	b.WriteString("            end\n")
}

func (g *logicGenerator) writeCases(b *strings.Builder) {
	addrs := g.params.Addresses(OpWrite)
	if len(addrs) == 0 {
		return
	}

	fmt.Fprintf(b, "            if (%s) begin\n", g.guard(OpWrite, "dwr_valid"))
	b.WriteString("                case (local_write_addr)\n")
	for _, addr := range addrs {
		rom := addr.RomName(OpWrite)
		if len(addr.Values) > 1 && g.withCounters() {
			counter := addr.CounterName(OpWrite)
			width := addr.CounterWidth()
			fmt.Fprintf(b, "                    20'h%s: begin\n", addr.Address)
			fmt.Fprintf(b, "                        %s <= (%s == %d'd%d) ? %d'd0 : %s + 1;\n",
				counter, counter, width, len(addr.Values)-1, width, counter)
			fmt.Fprintf(b, "                        %s[%s] <= dwr_data;\n", rom, counter)
			b.WriteString("                    end\n")
		} else {
			fmt.Fprintf(b, "                    20'h%s: %s[0] <= dwr_data;\n", addr.Address, rom)
		}
	}
	fmt.Fprintf(b, "                    default: wr_data_out <= 32'h%s;\n", g.params.DefaultValue(OpWrite))
	b.WriteString("                endcase\n")
	b.WriteString("            end\n")
}
