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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-mmio/pkg/command/ifc"
	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/srv"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) ifc.ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.ApiConfig.Address, cfg.ApiConfig.Port),
	}
}

// ListBars fetches the BAR indices known to the server.
func (c *ApiClient) ListBars() ([]int, error) {
	r, err := req.Get(fmt.Sprintf("%s/bars", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var bars []int
	if err := r.ToJSON(&bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// BarEntries fetches the register entries stored for one BAR.
func (c *ApiClient) BarEntries(bar int) ([]trace.RegisterEntry, error) {
	r, err := req.Get(fmt.Sprintf("%s/bars/%d/entries", c.ApiPrefix, bar))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var entries []trace.RegisterEntry
	if err := r.ToJSON(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Build asks the server to generate the Verilog module text.
func (c *ApiClient) Build(options *srv.BuildOptions) (string, error) {
	r, err := req.Post(fmt.Sprintf("%s/build", c.ApiPrefix), req.BodyJSON(options))
	if err != nil {
		return "", err
	}
	if r.Response().StatusCode != 200 {
		return "", errors.New(r.Response().Status)
	}
	resp := &srv.BuildResponse{}
	if err := r.ToJSON(resp); err != nil {
		return "", err
	}
	return resp.Module, nil
}
