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
	"encoding/json"
	"fmt"

	"github.com/gomodule/redigo/redis"

	"github.com/deduku/deduku.go/puzzle"
)

/*

cached solve results

*/

// Solving is deterministic, so a solve result is a pure
// function of the grid and can be cached forever under the
// grid's signature.

// resultKey: compute the cache key for a grid's solve result.
func resultKey(id string) string {
	return "RESULT:" + id
}

// CachedSolve solves a grid, consulting the result cache first
// and filling it on a miss.  The second return value reports
// whether the result came from the cache.  Reporters hear the
// deduction sequence either way; on a hit it is replayed from
// the cached log.  Errors only come from malformed grids.
func CachedSolve(values []int, reporters ...puzzle.Reporter) (*puzzle.Result, bool, error) {
	id, err := puzzle.Signature(values)
	if err != nil {
		return nil, false, err
	}
	if result := cacheLoadResult(id); result != nil {
		for _, d := range result.Deductions {
			for _, r := range reporters {
				r.Report(d)
			}
		}
		return result, true, nil
	}
	result, err := puzzle.Solve(values, reporters...)
	if err != nil {
		return nil, false, err
	}
	cacheInsertResult(id, result)
	return result, false, nil
}

// cacheLoadResult: load a cached solve result, nil on a miss.
func cacheLoadResult(id string) *puzzle.Result {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", resultKey(id)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading result %q: %v", id, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return nil
	}
	var result *puzzle.Result
	if err := json.Unmarshal(bytes, &result); err != nil {
		panic(fmt.Errorf("Failed to unmarshal result %q: %v", id, err))
	}
	return result
}

// cacheInsertResult: insert a solve result into the cache.
func cacheInsertResult(id string, result *puzzle.Result) {
	bytes, e := json.Marshal(result)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal result %q: %v", id, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", resultKey(id), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving result %q: %v", id, err)
		}
		return
	}
	rdExecute(body)
}
