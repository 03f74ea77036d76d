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
)

// Fragment is one generated chunk of Verilog source tied to a
// construct, a direction and a BAR. Fragments are values: a generator
// builds the text once and returns a fresh Fragment per call, so two
// calls with the same inputs yield equal fragments and nothing
// accumulates between calls.
type Fragment struct {
	Construct Construct
	Op        Op
	Bar       int
	text      string
}

func NewFragment(construct Construct, op Op, bar int, text string) Fragment {
	return Fragment{
		Construct: construct,
		Op:        op,
		Bar:       bar,
		text:      text,
	}
}

// Text returns the fragment contents.
func (f Fragment) Text() string {
	return f.text
}

// Empty reports whether the fragment holds no generated code.
func (f Fragment) Empty() bool {
	return strings.TrimSpace(f.text) == ""
}
