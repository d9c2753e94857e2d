// deduku.go - a narrated Sudoku deduction engine.
// Copyright (C) 2016 the deduku.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/deduku/deduku.go/puzzle"
)

/*

the puzzle library

*/

// A PuzzleInfo is the exported form of a stored puzzle: its
// signature, its user-facing name, its starting values, and a
// little bookkeeping.
type PuzzleInfo struct {
	PuzzleId string    // grid signature, unique per grid
	Name     string    // user-facing name, unique per library
	Values   []int     // starting values, reading order
	Blanks   int       // number of empty squares
	Created  time.Time // when the puzzle was stored
}

// makeInfo - make a PuzzleInfo from a stored entry
func (pe *puzzleEntry) makeInfo() *PuzzleInfo {
	values := make([]int, len(pe.Values))
	for i, v := range pe.Values {
		values[i] = int(v)
	}
	return &PuzzleInfo{
		PuzzleId: pe.PuzzleId,
		Name:     pe.Name,
		Values:   values,
		Blanks:   countZeroes(pe.Values),
		Created:  pe.Created,
	}
}

// compute the number of empty squares
func countZeroes(vals []int32) (count int) {
	for _, v := range vals {
		if v == 0 {
			count++
		}
	}
	return
}

// sorting of info sequences by puzzle name
type ByName []*PuzzleInfo

func (pi ByName) Len() int           { return len(pi) }
func (pi ByName) Swap(i, j int)      { pi[i], pi[j] = pi[j], pi[i] }
func (pi ByName) Less(i, j int) bool { return pi[i].Name < pi[j].Name }

// sorting of info sequences by creation time, newest first
type ByNewest []*PuzzleInfo

func (pi ByNewest) Len() int           { return len(pi) }
func (pi ByNewest) Swap(i, j int)      { pi[i], pi[j] = pi[j], pi[i] }
func (pi ByNewest) Less(i, j int) bool { return pi[i].Created.After(pi[j].Created) }

// SavePuzzle stores a named puzzle in the library.  The grid
// must be well formed and the name must be unused; both
// conditions come back as errors, not panics, because they are
// the caller's mistake rather than a storage failure.
func SavePuzzle(name string, values []int) (*PuzzleInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("Puzzle name cannot be empty")
	}
	id, err := puzzle.Signature(values)
	if err != nil {
		return nil, err
	}
	if prior, ok := LookupPuzzle(name); ok {
		return nil, fmt.Errorf("Name %q is taken by puzzle %q", name, prior.PuzzleId)
	}
	pe := &puzzleEntry{
		PuzzleId: id,
		Name:     name,
		Values:   make([]int32, len(values)),
		Created:  time.Now(),
	}
	for i, v := range values {
		pe.Values[i] = int32(v)
	}
	pe.databaseInsert()
	pe.cacheInsert()
	return pe.makeInfo(), nil
}

// LookupPuzzle finds a library puzzle by name.  The second
// return value reports whether the name is known.
func LookupPuzzle(name string) (*PuzzleInfo, bool) {
	var id string
	body := func(tx pgx.Tx) error {
		row := tx.QueryRow(context.Background(),
			"SELECT puzzleId FROM puzzles WHERE name = $1", name)
		if err := row.Scan(&id); err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			return fmt.Errorf("Failure looking up puzzle name %q: %v", name, err)
		}
		return nil
	}
	pgExecute(body)
	if id == "" {
		return nil, false
	}
	return loadPuzzleEntry(id).makeInfo(), true
}

// ListPuzzles returns the whole library, sorted by name.
func ListPuzzles() []*PuzzleInfo {
	var ids []string
	body := func(tx pgx.Tx) error {
		rows, err := tx.Query(context.Background(), "SELECT puzzleId FROM puzzles")
		if err != nil {
			return fmt.Errorf("Failure listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("Failure reading puzzle list: %v", err)
			}
			ids = append(ids, id)
		}
		return rows.Err()
	}
	pgExecute(body)
	infos := make([]*PuzzleInfo, len(ids))
	for i, id := range ids {
		infos[i] = loadPuzzleEntry(id).makeInfo()
	}
	sort.Sort(ByName(infos))
	return infos
}

// RemovePuzzle deletes a library puzzle by name, along with its
// cached entry and cached solve result.  Returns whether the
// name was known.
func RemovePuzzle(name string) bool {
	info, ok := LookupPuzzle(name)
	if !ok {
		return false
	}
	body := func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(),
			"DELETE FROM puzzles WHERE puzzleId = $1", info.PuzzleId)
		if err != nil {
			return fmt.Errorf("Database error deleting puzzle %q: %v", name, err)
		}
		return nil
	}
	pgExecute(body)
	pe := &puzzleEntry{PuzzleId: info.PuzzleId}
	cbody := func(tx redis.Conn) error {
		_, err := tx.Do("DEL", pe.key(), resultKey(info.PuzzleId))
		if err != nil {
			return fmt.Errorf("Cache failure deleting puzzle %q: %v", name, err)
		}
		return nil
	}
	rdExecute(cbody)
	return true
}

/*

puzzle entries

*/

// A puzzleEntry represents the stored form of a library puzzle.
// It is JSON serializable so it can go into the cache as well
// as the database.
type puzzleEntry struct {
	PuzzleId string // grid signature
	Name     string
	Values   []int32
	Created  time.Time
}

// loadPuzzleEntry first checks the cache, then the database, to
// find the puzzle's entry.  If it loads from the database, it
// caches the result.  Panics if there is no such stored entry.
func loadPuzzleEntry(id string) *puzzleEntry {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe
	}
	// cache miss, load from database and save to cache
	pe.databaseLoad()
	pe.cacheInsert()
	return pe
}

// key: compute the cache key for a puzzleEntry.
func (pe *puzzleEntry) key() string {
	return "PID:" + pe.PuzzleId
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *puzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzleEntry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *puzzleEntry
	err := json.Unmarshal(bytes, &spe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzleEntry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzleEntry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// databaseLoad: load a puzzle entry from the database.  Panics
// if there is no saved entry with the given id.
func (pe *puzzleEntry) databaseLoad() {
	body := func(tx pgx.Tx) error {
		row := tx.QueryRow(context.Background(),
			"SELECT name, valueList, created FROM puzzles "+
				"WHERE puzzleId = $1", pe.PuzzleId)
		if err := row.Scan(&pe.Name, &pe.Values, &pe.Created); err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		return nil
	}
	pgExecute(body)
}

// cacheInsert: insert a puzzle entry into the cache. Replaces
// any existing entry with the same id.
func (pe *puzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzleEntry %q: %v", pe.PuzzleId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a new puzzle entry into the database.
// Panics if there is already a saved entry with the given id.
func (pe *puzzleEntry) databaseInsert() {
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(context.Background(),
			"INSERT INTO puzzles (puzzleId, name, valueList, created) "+
				"VALUES ($1, $2, $3, $4)",
			pe.PuzzleId, pe.Name, pe.Values, pe.Created)
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(body)
}
