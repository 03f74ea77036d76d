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

package trace

import (
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	entry, err := ParseLine("R 1 10.000001 0 0xf7000010 0xdeadbeef 0x0 0")
	if err != nil {
		t.Fatalf("ParseLine failed: %s", err)
	}
	if entry.Operation != OpRead {
		t.Errorf("Operation: got %q, want %q", entry.Operation, OpRead)
	}
	if entry.Bar != 0 {
		t.Errorf("Bar: got %d, want 0", entry.Bar)
	}
	if entry.Address != "00010" {
		t.Errorf("Address: got %q, want 00010", entry.Address)
	}
	if entry.Value != "DEADBEEF" {
		t.Errorf("Value: got %q, want DEADBEEF", entry.Value)
	}
	if entry.Count != 1 {
		t.Errorf("Count: got %d, want 1", entry.Count)
	}
}

func TestParseLineAlignsSubWordAccess(t *testing.T) {
	entry, err := ParseLine("W 2 298.823649 1 0xf70003fd 0x7a 0x0 0")
	if err != nil {
		t.Fatalf("ParseLine failed: %s", err)
	}
	if entry.Address != "003FC" {
		t.Errorf("Address: got %q, want 003FC", entry.Address)
	}
	if entry.Value != "00007A00" {
		t.Errorf("Value: got %q, want 00007A00", entry.Value)
	}
}

func TestParseLineErrors(t *testing.T) {
	lines := []string{
		"R 1 10.0 0 0xf7000010 0xdeadbeef 0x0",      // too few fields
		"X 1 10.0 0 0xf7000010 0xdeadbeef 0x0 0",    // unknown operation
		"R 1 ten 0 0xf7000010 0xdeadbeef 0x0 0",     // bad timestamp
		"R 1 10.0 12 0xf7000010 0xdeadbeef 0x0 0",   // BAR out of range
		"R 1 10.0 0 f7000010 0xdeadbeef 0x0 0",      // address without 0x
		"R 1 10.0 0 0xf7000010 0xnotahexnum 0x0 0",  // bad value
	}
	for _, line := range lines {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q): expected error, got none", line)
		}
	}
}

func TestParseSkipsForeignLines(t *testing.T) {
	in := strings.Join([]string{
		"# mmio trace v1",
		"",
		"R 1 10.000001 0 0xf7000010 0x11 0x0 0",
		"MAP region bar0",
		"W 2 10.000002 0 0xf7000014 0x22 0x0 0",
		"R bogus line that fails to parse",
	}, "\n")
	data, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse failed: %s", err)
	}
	if len(data[0]) != 2 {
		t.Fatalf("entries for BAR 0: got %d, want 2", len(data[0]))
	}
}

func TestParseCoalescesRepeats(t *testing.T) {
	in := strings.Join([]string{
		"R 1 10.000001 0 0xf7000010 0x11 0x0 0",
		"R 2 10.000002 0 0xf7000010 0x22 0x0 0",
		"R 3 10.000003 0 0xf7000010 0x33 0x0 0",
		"W 4 10.000004 0 0xf7000010 0x44 0x0 0",
	}, "\n")
	data, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse failed: %s", err)
	}
	entries := data[0]
	if len(entries) != 2 {
		t.Fatalf("entries for BAR 0: got %d, want 2", len(entries))
	}
	read := entries[0]
	if read.Count != 3 {
		t.Errorf("Count: got %d, want 3", read.Count)
	}
	if read.Value != "00000033" {
		t.Errorf("Value: got %q, want last observed 00000033", read.Value)
	}
	want := []string{"00000011", "00000022", "00000033"}
	if len(read.Values) != len(want) {
		t.Fatalf("Values: got %v, want %v", read.Values, want)
	}
	for i := range want {
		if read.Values[i] != want[i] {
			t.Errorf("Values[%d]: got %q, want %q", i, read.Values[i], want[i])
		}
	}
	if entries[1].Operation != OpWrite || entries[1].Count != 1 {
		t.Errorf("write entry not kept separate: %+v", entries[1])
	}
}

func TestBarsAscending(t *testing.T) {
	data := BarData{
		2: {{Operation: OpRead, Bar: 2, Address: "00010", Value: "00000001"}},
		0: {{Operation: OpRead, Bar: 0, Address: "00010", Value: "00000001"}},
		1: {{Operation: OpRead, Bar: 1, Address: "00010", Value: "00000001"}},
	}
	bars := data.Bars()
	want := []int{0, 1, 2}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("Bars: got %v, want %v", bars, want)
		}
	}
}
