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

// go-mmio API
//
// RESTful APIs to interact with the go-mmio server
//
// Terms Of Service:
//
//	Schemes: http
//	Host: localhost:8004
//	Version: 1.0.0
//	Contact:
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package srv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-mmio/pkg/config"
	"jinr.ru/greenlab/go-mmio/pkg/log"
	"jinr.ru/greenlab/go-mmio/pkg/verilog"
)

// BuildOptions is the request body of /api/build. Absent toggles keep
// their defaults, which are all true.
type BuildOptions struct {
	BarSelection         []int  `json:"bar_selection,omitempty"`
	OperationFilter      string `json:"operation_filter,omitempty"`
	IncludeAddressChecks *bool  `json:"include_address_checks,omitempty"`
	IncludeCounters      *bool  `json:"include_counters,omitempty"`
	IncludeDefaultValues *bool  `json:"include_default_values,omitempty"`
	IncludeLogic         *bool  `json:"include_logic,omitempty"`
	IncludeStateMachines *bool  `json:"include_state_machines,omitempty"`
	InitRoms             *bool  `json:"init_roms,omitempty"`
}

// Options folds the request body over the default generation options.
func (o *BuildOptions) Options() *config.Options {
	opts := config.NewDefaultOptions()
	if len(o.BarSelection) > 0 {
		opts.BarSelection = o.BarSelection
	}
	if o.OperationFilter != "" {
		opts.OperationFilter = o.OperationFilter
	}
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&opts.IncludeAddressChecks, o.IncludeAddressChecks)
	set(&opts.IncludeCounters, o.IncludeCounters)
	set(&opts.IncludeDefaultValues, o.IncludeDefaultValues)
	set(&opts.IncludeLogic, o.IncludeLogic)
	set(&opts.IncludeStateMachines, o.IncludeStateMachines)
	set(&opts.InitRoms, o.InitRoms)
	return opts
}

// BuildResponse is the response body of /api/build.
type BuildResponse struct {
	Module string `json:"module"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	state *State
}

func NewApiServer(ctx context.Context, cfg *config.Config, state *State) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.ApiConfig.Address, cfg.ApiConfig.Port)
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		state:   state,
	}
	return s, nil
}

// Run ...
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.ApiConfig.Address, s.Config.ApiConfig.Port)
	if err := s.configureRouter(); err != nil {
		return err
	}
	httpServer := &http.Server{
		Handler: handlers.CombinedLoggingHandler(log.Writer(), s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.ApiConfig.Address, s.Config.ApiConfig.Port),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() error {
	spec, err := loads.Analyzed(json.RawMessage(swaggerJSON), "")
	if err != nil {
		return err
	}

	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/bars", s.handleBars()).Methods("GET")
	subRouter.HandleFunc("/bars/{bar:[0-9]}/entries", s.handleBarEntries()).Methods("GET")
	subRouter.HandleFunc("/build", s.handleBuild()).Methods("POST")

	s.Router.Handle("/api/docs", middleware.Redoc(middleware.RedocOpts{
		BasePath: "/api",
		SpecURL:  "/api/swagger.json",
		Path:     "docs",
	}, nil))
	s.Router.HandleFunc("/api/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec.Raw())
	})
	return nil
}

func (s *ApiServer) handleBars() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bars, err := s.state.Bars()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if bars == nil {
			bars = []int{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bars)
	}
}

func (s *ApiServer) handleBarEntries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		bar, err := strconv.Atoi(vars["bar"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		entries, err := s.state.BarEntries(bar)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if entries == nil {
			http.Error(w, fmt.Sprintf("No data for BAR %d", bar), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

func (s *ApiServer) handleBuild() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buildOptions := &BuildOptions{}
		if err := json.NewDecoder(r.Body).Decode(buildOptions); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := s.state.BarData()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		builder, err := verilog.NewModuleBuilder(data, s.Config.VerilogConfig.ModuleName, buildOptions.Options())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		module, err := builder.Build()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&BuildResponse{Module: module})
	}
}
