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
	"errors"
	"strings"
	"testing"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

func testEntry(op trace.Operation, bar int, address string, values ...string) trace.RegisterEntry {
	return trace.RegisterEntry{
		Operation: op,
		Bar:       bar,
		Address:   address,
		Value:     values[len(values)-1],
		Values:    values,
		Count:     len(values),
	}
}

func testBarData() trace.BarData {
	return trace.BarData{
		0: {
			testEntry(trace.OpRead, 0, "00010", "00000011"),
			testEntry(trace.OpRead, 0, "00020", "00000001", "00000002", "00000003"),
			testEntry(trace.OpWrite, 0, "00014", "000000FF"),
		},
	}
}

func mustBuild(t *testing.T, data trace.BarData, opts *config.Options) string {
	t.Helper()
	builder, err := NewModuleBuilder(data, "test_device", opts)
	if err != nil {
		t.Fatalf("NewModuleBuilder failed: %s", err)
	}
	out, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}
	return out
}

func TestBuildDeterministic(t *testing.T) {
	first := mustBuild(t, testBarData(), nil)
	for i := 0; i < 3; i++ {
		if out := mustBuild(t, testBarData(), nil); out != first {
			t.Fatalf("build %d differs from the first one", i)
		}
	}

	// repeated builds on one builder must not accumulate state
	builder, err := NewModuleBuilder(testBarData(), "test_device", nil)
	if err != nil {
		t.Fatalf("NewModuleBuilder failed: %s", err)
	}
	again, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}
	repeated, err := builder.Build()
	if err != nil {
		t.Fatalf("second Build failed: %s", err)
	}
	if again != repeated {
		t.Fatal("second build on the same builder differs")
	}
}

func TestBuildSectionOrder(t *testing.T) {
	out := mustBuild(t, testBarData(), nil)

	markers := []string{
		"module pcileech_bar_impl_test_device_0(",
		"bit [4:0] R_00010 [0:0];",
		"bit [1:0] R_C_00020;",
		"function read_addr_check;",
		"function write_addr_check;",
		"always_ff @(posedge clk) begin",
		"R_00010[0] <= 32'h00000011;",
		"end else begin",
		"case (local_read_addr)",
		"case (local_write_addr)",
		"endmodule",
	}
	last := -1
	for _, marker := range markers {
		i := strings.Index(out, marker)
		if i < 0 {
			t.Fatalf("marker %q not found in output:\n%s", marker, out)
		}
		if i < last {
			t.Errorf("marker %q appears out of order", marker)
		}
		last = i
	}
}

func TestBuildMultiValueReadUsesCounter(t *testing.T) {
	out := mustBuild(t, testBarData(), nil)
	if !strings.Contains(out, "rd_rsp_data <= R_00020[R_C_00020];") {
		t.Errorf("multi-value read should index its ROM with the counter:\n%s", out)
	}
	if !strings.Contains(out, "R_C_00020 <= (R_C_00020 == 2'd2) ? 2'd0 : R_C_00020 + 1;") {
		t.Errorf("counter rollover arm missing:\n%s", out)
	}
	if !strings.Contains(out, "20'h00010: rd_rsp_data <= R_00010[0];") {
		t.Errorf("single-value read should index row zero:\n%s", out)
	}
}

func TestBuildBarsAscending(t *testing.T) {
	data := trace.BarData{
		1: {testEntry(trace.OpRead, 1, "00010", "00000001")},
		0: {testEntry(trace.OpRead, 0, "00010", "00000001")},
	}
	out := mustBuild(t, data, nil)
	first := strings.Index(out, "pcileech_bar_impl_test_device_0(")
	second := strings.Index(out, "pcileech_bar_impl_test_device_1(")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("BAR modules not emitted in ascending order:\n%s", out)
	}
}

func TestBuildSkipsMissingBar(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.BarSelection = []int{0, 1}
	out := mustBuild(t, testBarData(), opts)
	if !strings.Contains(out, "pcileech_bar_impl_test_device_0(") {
		t.Error("BAR 0 missing from output")
	}
	if strings.Contains(out, "pcileech_bar_impl_test_device_1(") {
		t.Error("BAR 1 has no register data and must be skipped")
	}
}

func TestBuildOperationFilter(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.OperationFilter = config.OpFilterRead
	out := mustBuild(t, testBarData(), opts)
	if !strings.Contains(out, "R_00010") {
		t.Error("read ROM missing with read filter")
	}
	if strings.Contains(out, "W_00014") {
		t.Error("write ROM emitted despite read filter")
	}
	if strings.Contains(out, "write_addr_check") {
		t.Error("write address check emitted despite read filter")
	}

	opts = config.NewDefaultOptions()
	opts.OperationFilter = config.OpFilterWrite
	out = mustBuild(t, testBarData(), opts)
	if strings.Contains(out, "R_00010") {
		t.Error("read ROM emitted despite write filter")
	}
	if !strings.Contains(out, "W_00014") {
		t.Error("write ROM missing with write filter")
	}
	// the request pipeline still ships, write replies depend on it
	if !strings.Contains(out, "dwr_data        <= wr_data;") {
		t.Error("request pipeline missing with write filter")
	}
}

func TestBuildToggles(t *testing.T) {
	off := func(mutate func(*config.Options)) string {
		opts := config.NewDefaultOptions()
		mutate(opts)
		return mustBuild(t, testBarData(), opts)
	}

	out := off(func(o *config.Options) { o.IncludeCounters = false })
	if strings.Contains(out, "R_C_00020") {
		t.Error("counters emitted despite toggle off")
	}

	out = off(func(o *config.Options) { o.IncludeAddressChecks = false })
	if strings.Contains(out, "addr_check") {
		t.Error("address checks emitted despite toggle off")
	}
	if !strings.Contains(out, "if (drd_req_valid) begin") {
		t.Error("read guard should degrade to the bare valid signal")
	}

	out = off(func(o *config.Options) { o.IncludeStateMachines = false })
	if strings.Contains(out, "always_ff") {
		t.Error("state machine emitted despite toggle off")
	}
	if strings.Contains(out, "end else begin") {
		t.Error("request pipeline emitted despite state machine toggle off")
	}

	out = off(func(o *config.Options) { o.IncludeLogic = false })
	if strings.Contains(out, "case (local_read_addr)") {
		t.Error("response logic emitted despite toggle off")
	}

	out = off(func(o *config.Options) { o.IncludeDefaultValues = false })
	if !strings.Contains(out, "default: rd_rsp_data <= 32'h00000000;") {
		t.Error("read default should be all zeroes with default values off")
	}

	out = off(func(o *config.Options) { o.InitRoms = false })
	if strings.Contains(out, "R_00010[0] <= 32'h00000011;") {
		t.Error("ROM preloads emitted despite toggle off")
	}
}

func TestBuildDefaultValues(t *testing.T) {
	out := mustBuild(t, testBarData(), nil)
	// last observed value per direction
	if !strings.Contains(out, "default: rd_rsp_data <= 32'h00000003;") {
		t.Errorf("read default should be the last observed read value:\n%s", out)
	}
	if !strings.Contains(out, "default: wr_data_out <= 32'h000000FF;") {
		t.Errorf("write default should be the last observed write value:\n%s", out)
	}
}

func TestBuildDuplicateAddressFatal(t *testing.T) {
	data := trace.BarData{
		0: {
			testEntry(trace.OpRead, 0, "00010", "00000001"),
			testEntry(trace.OpRead, 0, "00010", "00000002"),
		},
		1: {testEntry(trace.OpRead, 1, "00010", "00000001")},
	}
	builder, err := NewModuleBuilder(data, "test_device", nil)
	if err != nil {
		t.Fatalf("NewModuleBuilder failed: %s", err)
	}
	out, err := builder.Build()
	var dup ErrDuplicateAddress
	if !errors.As(err, &dup) {
		t.Fatalf("expected ErrDuplicateAddress, got %v", err)
	}
	if strings.Contains(out, "pcileech_bar_impl_test_device_0(") {
		t.Error("broken BAR 0 must be omitted from the output")
	}
	// the other BAR still generates
	if !strings.Contains(out, "pcileech_bar_impl_test_device_1(") {
		t.Error("healthy BAR 1 should still be generated")
	}
}

func TestNewModuleBuilderValidatesOptions(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.OperationFilter = "sideways"
	if _, err := NewModuleBuilder(testBarData(), "test_device", opts); err == nil {
		t.Fatal("expected an invalid operation filter to fail")
	}
}
