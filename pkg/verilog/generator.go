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

// Generator produces fragments for one family of construct tags. A
// generator is a pure function of its BarParams: calling Generate
// twice with the same arguments returns byte-identical fragments and
// mutates nothing.
type Generator interface {
	Generate(construct Construct, op Op) (Fragment, error)
}

// Factory builds a generator instance bound to one BAR's parameters.
// The registry creates instances lazily and caches them per
// (construct, BAR) descriptor.
type Factory func(params *BarParams) Generator
