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

package serve

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/srv"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	DBOptionName      = "db"
)

func NewCommand() *cobra.Command {
	var address, dbPath string
	var port int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	apiConfig := cfg.ApiConfig
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				apiConfig.Address = address
			}
			if port != 0 {
				apiConfig.Port = port
			}
			if dbPath == "" {
				dbPath = cfg.TraceDBPath()
			}
			ctx := context.Background()
			state, err := srv.NewState(ctx, dbPath)
			if err != nil {
				return err
			}
			defer state.Close()
			server, err := srv.NewApiServer(ctx, cfg, state)
			if err != nil {
				return err
			}
			return server.Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Address to bind. E.g. %s", config.DefaultApiAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port number to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().StringVar(&dbPath, DBOptionName, "", "Path to the trace store")
	return cmd
}
