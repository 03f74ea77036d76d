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

package srv

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-mmio/pkg/log"
	"jinr.ru/greenlab/go-mmio/pkg/trace"
)

const (
	BucketPrefix = "bar_"
)

// State persists parsed trace entries so parsing and generation can
// run as separate steps. One bucket per BAR, one record per
// (direction, address).
type State struct {
	context.Context
	DB *bbolt.DB
}

func NewState(ctx context.Context, path string) (*State, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &State{
		Context: ctx,
		DB:      db,
	}, nil
}

// Close ...
func (s *State) Close() {
	s.DB.Close()
}

func BucketName(bar int) string {
	return fmt.Sprintf("%s%d", BucketPrefix, bar)
}

func entryKey(entry *trace.RegisterEntry) string {
	return fmt.Sprintf("%s_%s", entry.Operation, entry.Address)
}

// PutEntries stores one parsed trace snapshot, replacing any previous
// records for the BARs it contains.
func (s *State) PutEntries(data trace.BarData) error {
	return s.DB.Update(func(tx *bbolt.Tx) error {
		for bar, entries := range data {
			name := []byte(BucketName(bar))
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			b, err := tx.CreateBucket(name)
			if err != nil {
				return err
			}
			log.Debug("Storing %d entries for BAR %d", len(entries), bar)
			for i := range entries {
				entryBytes, err := yaml.Marshal(&entries[i])
				if err != nil {
					return err
				}
				if err := b.Put([]byte(entryKey(&entries[i])), entryBytes); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Bars returns the BAR indices present in the store, ascending.
func (s *State) Bars() ([]int, error) {
	var bars []int
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			if !strings.HasPrefix(string(name), BucketPrefix) {
				return nil
			}
			bar, err := strconv.Atoi(strings.TrimPrefix(string(name), BucketPrefix))
			if err != nil {
				return nil
			}
			bars = append(bars, bar)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	sort.Ints(bars)
	return bars, nil
}

// BarEntries returns the stored entries for one BAR in key order.
func (s *State) BarEntries(bar int) ([]trace.RegisterEntry, error) {
	var entries []trace.RegisterEntry
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName(bar)))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var entry trace.RegisterEntry
			if err := yaml.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

// BarData reassembles the full register data snapshot from the store.
func (s *State) BarData() (trace.BarData, error) {
	bars, err := s.Bars()
	if err != nil {
		return nil, err
	}
	data := trace.BarData{}
	for _, bar := range bars {
		entries, err := s.BarEntries(bar)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			data[bar] = entries
		}
	}
	return data, nil
}
