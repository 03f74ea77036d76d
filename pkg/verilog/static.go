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
	"strings"
	"text/template"

	"jinr.ru/greenlab/go-mmio/pkg/log"
)

// headerTemplate is the PCIe BAR implementation module shell: ports,
// delayed request registers and the BAR-local address computation the
// generated constructs work against.
var headerTemplate = template.Must(template.New("header").Parse(
	`module pcileech_bar_impl_{{.ModuleName}}_{{.Bar}}(
    input               rst,
    input               clk,
    // incoming BAR writes:
    input [31:0]        wr_addr,
    input [3:0]         wr_be,
    input [31:0]        wr_data,
    input               wr_valid,
    // incoming BAR reads:
    input  [87:0]       rd_req_ctx,
    input  [31:0]       rd_req_addr,
    input               rd_req_valid,
    input  [31:0]       base_address_register,
    // outgoing BAR read replies:
    output logic [87:0] rd_rsp_ctx,
    output logic [31:0] rd_rsp_data,
    output logic        rd_rsp_valid
);

    bit [87:0]      drd_req_ctx;
    bit [31:0]      drd_req_addr;
    bit             drd_req_valid;

    bit [31:0]      dwr_addr;
    bit [31:0]      dwr_data;
    bit             dwr_valid;
    bit [31:0]      wr_data_out;

    wire [19:0]     local_read_addr;
    wire [19:0]     local_write_addr;

    assign local_read_addr = ({drd_req_addr[31:24], drd_req_addr[23:16],
                                drd_req_addr[15:8], drd_req_addr[7:0]} -
                                (base_address_register & ~32'hFFF)) & 20'hFFFFF;

    assign local_write_addr = ({dwr_addr[31:24], dwr_addr[23:16],
                                dwr_addr[15:8], dwr_addr[7:0]} -
                                (base_address_register & ~32'hFFF)) & 20'hFFFFF;
`))

const stateMachineStart = `    always_ff @(posedge clk) begin
        if (rst) begin
            rd_rsp_valid <= 1'b0;
`

const stateMachineEnd = `        end
    end
`

// staticGenerator emits the fixed scaffolding: module header with the
// full port list, state machine prologue and epilogue. Only the header
// depends on parameters (module naming).
type staticGenerator struct {
	params *BarParams
}

func newStaticGenerator(params *BarParams) Generator {
	return &staticGenerator{params: params}
}

func (g *staticGenerator) Generate(construct Construct, op Op) (Fragment, error) {
	if !op.valid() {
		return Fragment{}, ErrInvalidOp{Op: op, Construct: construct}
	}
	switch construct {
	case ConstructHeader:
		var b strings.Builder
		data := struct {
			ModuleName string
			Bar        int
		}{
			ModuleName: g.params.ModuleName,
			Bar:        g.params.Bar,
		}
		if err := headerTemplate.Execute(&b, data); err != nil {
			return Fragment{}, err
		}
		return NewFragment(construct, op, g.params.Bar, b.String()), nil
	case ConstructStateMachineStart:
		return NewFragment(construct, op, g.params.Bar, stateMachineStart), nil
	case ConstructStateMachineEnd:
		return NewFragment(construct, op, g.params.Bar, stateMachineEnd), nil
	}
	log.Warning("Static generator can not produce construct %q", construct)
	return NewFragment(construct, op, g.params.Bar, ""), nil
}
