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
	"math/bits"
	"sort"
	"strconv"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

const defaultRegisterValue = "00000000"

// AddressInfo is one register address of a BAR together with the
// ordered values observed there for one direction.
type AddressInfo struct {
	Address string
	Values  []string
}

// RomName is the lookup table name for an address, e.g. R_00010.
func (a AddressInfo) RomName(op Op) string {
	return op.Prefix() + "_" + a.Address
}

// CounterName is the access counter name for an address, e.g. R_C_00010.
func (a AddressInfo) CounterName(op Op) string {
	return op.Prefix() + "_C_" + a.Address
}

// CounterWidth is the bit width needed to index the address's value
// sequence, at least one bit.
func (a AddressInfo) CounterWidth() int {
	width := bitLength(uint64(len(a.Values)))
	if width < 1 {
		width = 1
	}
	return width
}

// BarParams is the read-only per-BAR view the generators work from:
// sorted unique addresses per direction with their value sequences,
// per-address bit widths, default values and the generation options.
// Fragment text is a pure function of BarParams.
type BarParams struct {
	Bar        int
	ModuleName string
	Options    *config.Options

	read         []AddressInfo
	write        []AddressInfo
	widths       map[string]int
	readDefault  string
	writeDefault string
}

// NewBarParams derives the generator view from one BAR's register
// entries. Two entries sharing an address and direction make lookup
// semantics ambiguous and fail with ErrDuplicateAddress.
func NewBarParams(bar int, entries []trace.RegisterEntry, moduleName string, opts *config.Options) (*BarParams, error) {
	p := &BarParams{
		Bar:          bar,
		ModuleName:   moduleName,
		Options:      opts,
		widths:       make(map[string]int),
		readDefault:  defaultRegisterValue,
		writeDefault: defaultRegisterValue,
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		op := opFromTrace(entry.Operation)
		if op == OpNone {
			continue
		}
		key := string(entry.Operation) + "_" + entry.Address
		if seen[key] {
			return nil, ErrDuplicateAddress{Bar: bar, Address: entry.Address, Op: op}
		}
		seen[key] = true

		info := AddressInfo{Address: entry.Address, Values: entry.Sequence()}
		switch op {
		case OpRead:
			p.read = append(p.read, info)
			p.readDefault = info.Values[len(info.Values)-1]
		case OpWrite:
			p.write = append(p.write, info)
			p.writeDefault = info.Values[len(info.Values)-1]
		}

		for _, value := range info.Values {
			if width := valueBitWidth(value); width > p.widths[entry.Address] {
				p.widths[entry.Address] = width
			}
		}
	}

	sort.Slice(p.read, func(i, j int) bool { return p.read[i].Address < p.read[j].Address })
	sort.Slice(p.write, func(i, j int) bool { return p.write[i].Address < p.write[j].Address })

	return p, nil
}

// Addresses returns the BAR's addresses for one direction, ascending.
func (p *BarParams) Addresses(op Op) []AddressInfo {
	switch op {
	case OpRead:
		return p.read
	case OpWrite:
		return p.write
	}
	return nil
}

// BitWidth is the register width for an address: the widest value ever
// observed there, in either direction.
func (p *BarParams) BitWidth(address string) int {
	if width, ok := p.widths[address]; ok {
		return width
	}
	return 32
}

// DefaultValue is the value driven for unmatched addresses of one
// direction. With default-value structures disabled it is all zeroes.
func (p *BarParams) DefaultValue(op Op) string {
	if p.Options != nil && !p.Options.IncludeDefaultValues {
		return defaultRegisterValue
	}
	if op == OpWrite {
		return p.writeDefault
	}
	return p.readDefault
}

func opFromTrace(op trace.Operation) Op {
	switch op {
	case trace.OpRead:
		return OpRead
	case trace.OpWrite:
		return OpWrite
	}
	return OpNone
}

func valueBitWidth(value string) int {
	v, err := strconv.ParseUint(value, 16, 64)
	if err != nil {
		return 32
	}
	if width := bitLength(v); width > 0 {
		return width
	}
	return 1
}

func bitLength(v uint64) int {
	return bits.Len64(v)
}
