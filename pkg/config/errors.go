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

package config

import (
	"fmt"
)

// ErrConfigFileExists returned when persisting a config would overwrite an existing file
type ErrConfigFileExists struct {
	Path string
}

func (e ErrConfigFileExists) Error() string {
	return fmt.Sprintf("Config file already exists: %s", e.Path)
}

// ErrInvalidOperationFilter returned when the operation filter is not read/write/both
type ErrInvalidOperationFilter struct {
	Filter string
}

func (e ErrInvalidOperationFilter) Error() string {
	return fmt.Sprintf("Invalid operation filter: %s. Must be one of: %s, %s, %s",
		e.Filter, OpFilterRead, OpFilterWrite, OpFilterBoth)
}

// ErrInvalidBarSelection returned when a selected BAR index is negative
type ErrInvalidBarSelection struct {
	Bar int
}

func (e ErrInvalidBarSelection) Error() string {
	return fmt.Sprintf("Invalid BAR selection: %d. BAR indices must be non-negative", e.Bar)
}
