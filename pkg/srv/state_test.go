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

package srv

import (
	"context"
	"path/filepath"
	"testing"

	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

func testState(t *testing.T) *State {
	t.Helper()
	state, err := NewState(context.Background(), filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("NewState failed: %s", err)
	}
	t.Cleanup(state.Close)
	return state
}

func TestStateRoundTrip(t *testing.T) {
	state := testState(t)

	data := trace.BarData{
		0: {
			{Operation: trace.OpRead, Bar: 0, Address: "00010", Value: "00000011", Values: []string{"00000011"}, Count: 1},
			{Operation: trace.OpWrite, Bar: 0, Address: "00014", Value: "000000FF", Values: []string{"000000FF"}, Count: 1},
		},
		2: {
			{Operation: trace.OpRead, Bar: 2, Address: "00020", Value: "00000002", Values: []string{"00000001", "00000002"}, Count: 2},
		},
	}
	if err := state.PutEntries(data); err != nil {
		t.Fatalf("PutEntries failed: %s", err)
	}

	bars, err := state.Bars()
	if err != nil {
		t.Fatalf("Bars failed: %s", err)
	}
	want := []int{0, 2}
	if len(bars) != len(want) || bars[0] != want[0] || bars[1] != want[1] {
		t.Fatalf("Bars: got %v, want %v", bars, want)
	}

	entries, err := state.BarEntries(2)
	if err != nil {
		t.Fatalf("BarEntries failed: %s", err)
	}
	if len(entries) != 1 {
		t.Fatalf("BarEntries for BAR 2: got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.Address != "00020" || got.Value != "00000002" || got.Count != 2 {
		t.Errorf("entry mangled in storage: %+v", got)
	}
	if len(got.Values) != 2 || got.Values[0] != "00000001" {
		t.Errorf("value sequence mangled in storage: %v", got.Values)
	}

	roundTripped, err := state.BarData()
	if err != nil {
		t.Fatalf("BarData failed: %s", err)
	}
	if len(roundTripped) != 2 {
		t.Fatalf("BarData: got %d BARs, want 2", len(roundTripped))
	}
}

func TestStateReplacesBarOnPut(t *testing.T) {
	state := testState(t)

	first := trace.BarData{
		0: {
			{Operation: trace.OpRead, Bar: 0, Address: "00010", Value: "00000011", Count: 1},
			{Operation: trace.OpRead, Bar: 0, Address: "00014", Value: "00000022", Count: 1},
		},
	}
	if err := state.PutEntries(first); err != nil {
		t.Fatalf("PutEntries failed: %s", err)
	}

	second := trace.BarData{
		0: {
			{Operation: trace.OpRead, Bar: 0, Address: "00018", Value: "00000033", Count: 1},
		},
	}
	if err := state.PutEntries(second); err != nil {
		t.Fatalf("second PutEntries failed: %s", err)
	}

	entries, err := state.BarEntries(0)
	if err != nil {
		t.Fatalf("BarEntries failed: %s", err)
	}
	if len(entries) != 1 || entries[0].Address != "00018" {
		t.Fatalf("old entries survived the replace: %+v", entries)
	}
}

func TestStateMissingBar(t *testing.T) {
	state := testState(t)
	entries, err := state.BarEntries(7)
	if err != nil {
		t.Fatalf("BarEntries failed: %s", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries for a BAR never stored, got %+v", entries)
	}
}
