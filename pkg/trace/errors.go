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
	"fmt"
)

// ErrTraceLine returned when a line that looks like a register access can not be parsed
type ErrTraceLine struct {
	LineNumber int
	What       string
}

func (e ErrTraceLine) Error() string {
	return fmt.Sprintf("Error while parsing trace line %d: %s", e.LineNumber, e.What)
}

// ErrBarOutOfRange returned when a trace line names a BAR index outside 0..9
type ErrBarOutOfRange struct {
	Bar int
}

func (e ErrBarOutOfRange) Error() string {
	return fmt.Sprintf("BAR number out of range: %d", e.Bar)
}
