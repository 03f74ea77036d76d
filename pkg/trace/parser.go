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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"jinr.ru/greenlab/go-mmio/pkg/log"
)

// Trace lines have eight whitespace separated fields:
//
//	W 2 298.823649 1 0xf70003fc 0x7a 0x0 0
//	op counter timestamp bar address value register_value final
//
// Lines not starting with R or W are skipped silently, malformed R/W
// lines are skipped with a debug log. Sub-word accesses are aligned to
// their 32-bit word: the address is rounded down and the value shifted
// left by eight bits per byte of offset.
const traceLineFields = 8

type coalesceKey struct {
	bar  int
	op   Operation
	addr string
}

// Parse reads an MMIO trace and returns entries grouped by BAR.
// Repeated accesses to the same (BAR, address, direction) are
// coalesced into one entry: the last value wins and the observation
// count is incremented.
func Parse(r io.Reader) (BarData, error) {
	data := BarData{}
	index := make(map[coalesceKey]int)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, string(OpRead)) && !strings.HasPrefix(line, string(OpWrite)) {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			log.Debug("Skipping trace line %d: %s", lineNumber, err)
			continue
		}
		key := coalesceKey{bar: entry.Bar, op: entry.Operation, addr: entry.Address}
		if i, ok := index[key]; ok {
			prev := &data[entry.Bar][i]
			prev.Value = entry.Value
			prev.Values = append(prev.Values, entry.Value)
			prev.Count++
			continue
		}
		entry.Values = []string{entry.Value}
		data[entry.Bar] = append(data[entry.Bar], *entry)
		index[key] = len(data[entry.Bar]) - 1
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// ParseLine parses one R/W trace line into a normalized entry.
func ParseLine(line string) (*RegisterEntry, error) {
	fields := strings.Fields(line)
	if len(fields) != traceLineFields {
		return nil, ErrTraceLine{What: fmt.Sprintf("expected %d fields, got %d", traceLineFields, len(fields))}
	}

	var op Operation
	switch fields[0] {
	case string(OpRead):
		op = OpRead
	case string(OpWrite):
		op = OpWrite
	default:
		return nil, ErrTraceLine{What: fmt.Sprintf("unknown operation %q", fields[0])}
	}

	timestamp, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, ErrTraceLine{What: fmt.Sprintf("bad timestamp %q", fields[2])}
	}

	bar, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, ErrTraceLine{What: fmt.Sprintf("bad BAR number %q", fields[3])}
	}
	if bar < 0 || bar > 9 {
		return nil, ErrBarOutOfRange{Bar: bar}
	}

	addr, err := parseHex(fields[4], 32)
	if err != nil {
		return nil, err
	}
	value, err := parseHex(fields[5], 32)
	if err != nil {
		return nil, err
	}

	// align sub-word accesses to their 32-bit word
	offset := addr & 3
	addr &^= 3
	value = (value << (8 * offset)) & 0xFFFFFFFF

	return &RegisterEntry{
		Operation: op,
		Bar:       bar,
		Address:   FormatAddress(addr),
		Value:     FormatValue(value),
		Count:     1,
		Timestamp: timestamp,
	}, nil
}

func parseHex(s string, bits int) (uint64, error) {
	if !strings.HasPrefix(s, "0x") {
		return 0, ErrTraceLine{What: fmt.Sprintf("hex value without 0x prefix: %q", s)}
	}
	v, err := strconv.ParseUint(s[2:], 16, bits)
	if err != nil {
		return 0, ErrTraceLine{What: fmt.Sprintf("bad hex value %q", s)}
	}
	return v, nil
}

// FormatAddress renders the canonical 5-digit upper-case hex form of a
// BAR-local word address.
func FormatAddress(addr uint64) string {
	return fmt.Sprintf("%05X", addr&0xFFFFF)
}

// FormatValue renders the canonical 8-digit upper-case hex form of a
// register value.
func FormatValue(value uint64) string {
	return fmt.Sprintf("%08X", value&0xFFFFFFFF)
}
