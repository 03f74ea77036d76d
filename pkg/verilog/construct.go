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

// Op selects which side of the register block a build request targets.
// OpNone is accepted only by direction-free constructs (header and
// state machine scaffolding).
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
	OpNone  Op = "none"
)

// Prefix returns the single-letter direction prefix used in generated
// signal names, e.g. R_00010 or W_C_00014.
func (op Op) Prefix() string {
	switch op {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	}
	return ""
}

func (op Op) valid() bool {
	return op == OpRead || op == OpWrite || op == OpNone
}

// Construct identifies one generated hardware construct. The set is
// closed: all tags are registered once at registry construction and
// requests for anything else degrade to empty output.
type Construct string

const (
	ConstructRom               Construct = "rom"
	ConstructRomInit           Construct = "rom_init"
	ConstructCounter           Construct = "counter"
	ConstructResetCounter      Construct = "reset_counter"
	ConstructAddrCheck         Construct = "addr_check"
	ConstructLogic             Construct = "logic"
	ConstructHeader            Construct = "header"
	ConstructStateMachineStart Construct = "state_machine_start"
	ConstructStateMachineEnd   Construct = "state_machine_end"
)

// directionFree constructs take OpNone: their output does not depend
// on a read/write direction.
func (c Construct) directionFree() bool {
	switch c {
	case ConstructHeader, ConstructStateMachineStart, ConstructStateMachineEnd:
		return true
	}
	return false
}

// mustProduce constructs may never come back empty: they are fixed
// scaffolding, so an empty fragment means a broken generator.
func (c Construct) mustProduce() bool {
	return c.directionFree()
}
