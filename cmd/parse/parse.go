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

package parse

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/srv"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

const (
	InputOptionName = "input"
	DBOptionName    = "db"
)

// NewCommand creates the command that reads a register trace file and
// stores the coalesced entries in the trace store.
func NewCommand() *cobra.Command {
	var input, dbPath string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a register trace file into the trace store",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()
			data, err := trace.Parse(f)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.TraceDBPath()
			}
			state, err := srv.NewState(context.Background(), dbPath)
			if err != nil {
				return err
			}
			defer state.Close()
			if err := state.PutEntries(data); err != nil {
				return err
			}
			for _, bar := range data.Bars() {
				fmt.Fprintf(cmd.OutOrStdout(), "BAR %d: %d registers\n", bar, len(data[bar]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, InputOptionName, "", "Path to the register trace file")
	cmd.Flags().StringVar(&dbPath, DBOptionName, "", "Path to the trace store")
	cmd.MarkFlagRequired(InputOptionName)
	return cmd
}
