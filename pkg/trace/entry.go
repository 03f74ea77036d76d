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
	"sort"
)

type Operation string

const (
	OpRead  Operation = "R"
	OpWrite Operation = "W"
)

// RegisterEntry is one register access observed in an MMIO trace,
// normalized to its 32-bit word: Address is the canonical 5-digit
// upper-case hex word offset within the BAR, Value the canonical
// 8-digit upper-case hex word value. Count is the number of trace
// lines coalesced into this entry; Value holds the last one observed.
type RegisterEntry struct {
	Operation Operation `json:"operation"`
	Bar       int       `json:"bar"`
	Address   string    `json:"address"`
	Value     string    `json:"value"`
	Values    []string  `json:"values,omitempty"`
	Count     int       `json:"count"`
	Timestamp float64   `json:"timestamp,omitempty"`
}

// Sequence returns the ordered values observed at this entry's
// address. Entries built by hand with only the default value set are
// treated as a single observation.
func (e *RegisterEntry) Sequence() []string {
	if len(e.Values) > 0 {
		return e.Values
	}
	return []string{e.Value}
}

// BarData maps a BAR index to its register entries in trace order.
// It is a read-only snapshot for the duration of one generation run.
type BarData map[int][]RegisterEntry

// Bars returns the BAR indices present in the data, ascending.
func (d BarData) Bars() []int {
	bars := make([]int, 0, len(d))
	for bar := range d {
		bars = append(bars, bar)
	}
	sort.Ints(bars)
	return bars
}
