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
	"testing"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

func TestNewBarParamsRejectsDuplicates(t *testing.T) {
	entries := []trace.RegisterEntry{
		testEntry(trace.OpRead, 0, "00010", "00000001"),
		testEntry(trace.OpRead, 0, "00010", "00000002"),
	}
	_, err := NewBarParams(0, entries, "test_device", config.NewDefaultOptions())
	var dup ErrDuplicateAddress
	if !errors.As(err, &dup) {
		t.Fatalf("expected ErrDuplicateAddress, got %v", err)
	}
	if dup.Address != "00010" || dup.Op != OpRead {
		t.Errorf("duplicate misreported: %+v", dup)
	}
}

func TestNewBarParamsAllowsSameAddressAcrossDirections(t *testing.T) {
	entries := []trace.RegisterEntry{
		testEntry(trace.OpRead, 0, "00010", "00000001"),
		testEntry(trace.OpWrite, 0, "00010", "00000002"),
	}
	params, err := NewBarParams(0, entries, "test_device", config.NewDefaultOptions())
	if err != nil {
		t.Fatalf("NewBarParams failed: %s", err)
	}
	if len(params.Addresses(OpRead)) != 1 || len(params.Addresses(OpWrite)) != 1 {
		t.Error("each direction should keep its own entry")
	}
}

func TestBarParamsAddressesSorted(t *testing.T) {
	entries := []trace.RegisterEntry{
		testEntry(trace.OpRead, 0, "00020", "00000001"),
		testEntry(trace.OpRead, 0, "00010", "00000001"),
		testEntry(trace.OpRead, 0, "00018", "00000001"),
	}
	params, err := NewBarParams(0, entries, "test_device", config.NewDefaultOptions())
	if err != nil {
		t.Fatalf("NewBarParams failed: %s", err)
	}
	want := []string{"00010", "00018", "00020"}
	addrs := params.Addresses(OpRead)
	for i := range want {
		if addrs[i].Address != want[i] {
			t.Fatalf("addresses not sorted: got %v", addrs)
		}
	}
}

func TestBarParamsBitWidthSpansDirections(t *testing.T) {
	entries := []trace.RegisterEntry{
		testEntry(trace.OpRead, 0, "00010", "00000003"),
		testEntry(trace.OpWrite, 0, "00010", "0000FFFF"),
	}
	params, err := NewBarParams(0, entries, "test_device", config.NewDefaultOptions())
	if err != nil {
		t.Fatalf("NewBarParams failed: %s", err)
	}
	if got := params.BitWidth("00010"); got != 16 {
		t.Errorf("BitWidth: got %d, want widest observed value width 16", got)
	}
	if got := params.BitWidth("99999"); got != 32 {
		t.Errorf("BitWidth of unknown address: got %d, want 32", got)
	}
}

func TestCounterWidth(t *testing.T) {
	cases := []struct {
		values int
		width  int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{8, 4},
	}
	for _, c := range cases {
		info := AddressInfo{Address: "00010", Values: make([]string, c.values)}
		if got := info.CounterWidth(); got != c.width {
			t.Errorf("CounterWidth for %d values: got %d, want %d", c.values, got, c.width)
		}
	}
}

func TestDefaultValueToggle(t *testing.T) {
	entries := []trace.RegisterEntry{
		testEntry(trace.OpRead, 0, "00010", "00000001", "00000002"),
	}
	opts := config.NewDefaultOptions()
	params, err := NewBarParams(0, entries, "test_device", opts)
	if err != nil {
		t.Fatalf("NewBarParams failed: %s", err)
	}
	if got := params.DefaultValue(OpRead); got != "00000002" {
		t.Errorf("DefaultValue: got %q, want last observed 00000002", got)
	}
	// no write observed, the write side falls back to zeroes
	if got := params.DefaultValue(OpWrite); got != "00000000" {
		t.Errorf("write DefaultValue: got %q, want 00000000", got)
	}

	opts.IncludeDefaultValues = false
	if got := params.DefaultValue(OpRead); got != "00000000" {
		t.Errorf("DefaultValue with defaults off: got %q, want 00000000", got)
	}
}
