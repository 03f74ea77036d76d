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
)

// ErrInvalidOp returned when a build request carries an operation the construct can not take
type ErrInvalidOp struct {
	Op        Op
	Construct Construct
}

func (e ErrInvalidOp) Error() string {
	return fmt.Sprintf("Invalid operation %q for construct %q", e.Op, e.Construct)
}

// ErrUnregisteredConstruct describes a build request for an unknown construct tag.
// It is logged and swallowed by the registry, never propagated.
type ErrUnregisteredConstruct struct {
	Construct Construct
}

func (e ErrUnregisteredConstruct) Error() string {
	return fmt.Sprintf("No generator registered for construct %q", e.Construct)
}

// ErrMissingBarData returned when a selected BAR has no entries in the register data
type ErrMissingBarData struct {
	Bar int
}

func (e ErrMissingBarData) Error() string {
	return fmt.Sprintf("No register data for BAR %d", e.Bar)
}

// ErrDuplicateAddress returned when two register entries share an address and direction
// within one BAR, which makes lookup generation ambiguous
type ErrDuplicateAddress struct {
	Bar     int
	Address string
	Op      Op
}

func (e ErrDuplicateAddress) Error() string {
	return fmt.Sprintf("Duplicate %s register entry for address %s in BAR %d", e.Op, e.Address, e.Bar)
}

// ErrEmptyFragment returned when a generator that must produce scaffolding comes back empty
type ErrEmptyFragment struct {
	Construct Construct
	Bar       int
}

func (e ErrEmptyFragment) Error() string {
	return fmt.Sprintf("Generator for construct %q produced an empty fragment for BAR %d", e.Construct, e.Bar)
}
