//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package store keeps the history of opened files in a bbolt database.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketFile = "file"

// Parameters for file history scores.
const (
	FileScoreDecay     = 0.986 // roughly 0.5^(1/50)
	FileScoreIncrement = 10
	FileScorePrecision = 6
)

// A File is an entry in the file history.
type File struct {
	Path  string
	Score float64
}

// Store is the file history database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFile))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func marshalScore(score float64) []byte {
	return []byte(strconv.FormatFloat(score, 'E', FileScorePrecision, 64))
}

func unmarshalScore(data []byte) float64 {
	f, _ := strconv.ParseFloat(string(data), 64)
	return f
}

// AddFile records a visit to path. Every other entry decays.
func (s *Store) AddFile(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFile))

		decayed := make(map[string][]byte)
		err := b.ForEach(func(k, v []byte) error {
			decayed[string(k)] = marshalScore(unmarshalScore(v) * FileScoreDecay)
			return nil
		})
		if err != nil {
			return err
		}
		for k, v := range decayed {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}

		k := []byte(path)
		score := float64(0)
		if v := b.Get(k); v != nil {
			score = unmarshalScore(v)
		}
		score += FileScoreIncrement
		return b.Put(k, marshalScore(score))
	})
}

// DelFile removes path from the history.
func (s *Store) DelFile(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketFile)).Delete([]byte(path))
	})
}

// Files lists the history, highest score first.
func (s *Store) Files() ([]File, error) {
	var files []File
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketFile)).ForEach(func(k, v []byte) error {
			files = append(files, File{Path: string(k), Score: unmarshalScore(v)})
			return nil
		})
	})
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Score > files[j].Score
	})
	return files, err
}
