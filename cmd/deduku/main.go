// The deduku web service: a JSON API over the deduction solver
// and the puzzle library.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/deduku/deduku.go/puzzle"
	"github.com/deduku/deduku.go/storage"
)

// A savePuzzleRequest is the posted form of a library puzzle.
type savePuzzleRequest struct {
	Name   string `json:"name"`
	Values []int  `json:"values"`
}

// sendJSON encodes a reply the way the puzzle handlers do.
func sendJSON(w http.ResponseWriter, status int, obj interface{}) {
	bytes, err := json.Marshal(obj)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

// guarded wraps a handler so storage panics turn into 500s
// instead of killing the server.
func guarded(handler func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				log.Printf("Storage failure handling %s %s: %v", r.Method, r.URL.Path, e)
				http.Error(w, "storage failure", http.StatusInternalServerError)
			}
		}()
		log.Printf("Handling %s %s...", r.Method, r.URL.Path)
		handler(w, r)
	}
}

// solveHandler solves a posted grid, going through the result
// cache so repeat grids are never re-derived.
func solveHandler(w http.ResponseWriter, r *http.Request) {
	var req puzzle.GridRequest
	if e := json.NewDecoder(r.Body).Decode(&req); e != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"message": e.Error()})
		return
	}
	result, cached, err := storage.CachedSolve(req.Values)
	if err != nil {
		sendJSON(w, http.StatusBadRequest, err)
		return
	}
	if cached {
		log.Printf("Served cached solve result.")
	}
	sendJSON(w, http.StatusOK, result)
}

// checkHandler validates a posted grid as a completed Sudoku.
func checkHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := puzzle.CheckHandler(w, r); err != nil {
		log.Printf("Check failed: %v", err)
	}
}

// libraryHandler covers the /api/puzzles/ endpoints:
//
//	GET    /api/puzzles            list the library
//	POST   /api/puzzles            save a named puzzle
//	GET    /api/puzzles/<name>     fetch one puzzle
//	DELETE /api/puzzles/<name>     remove one puzzle
//	GET    /api/puzzles/<name>/solve   solve one puzzle
func libraryHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/puzzles"), "/")
	if rest == "" {
		switch r.Method {
		case "GET":
			sendJSON(w, http.StatusOK, storage.ListPuzzles())
		case "POST":
			var req savePuzzleRequest
			if e := json.NewDecoder(r.Body).Decode(&req); e != nil {
				sendJSON(w, http.StatusBadRequest, map[string]string{"message": e.Error()})
				return
			}
			info, err := storage.SavePuzzle(req.Name, req.Values)
			if err != nil {
				sendJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
				return
			}
			log.Printf("Saved puzzle %q as %q.", req.Name, info.PuzzleId)
			sendJSON(w, http.StatusOK, info)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	name, solve := rest, false
	if strings.HasSuffix(rest, "/solve") {
		name, solve = strings.TrimSuffix(rest, "/solve"), true
	}
	info, ok := storage.LookupPuzzle(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch {
	case solve && r.Method == "GET":
		result, cached, err := storage.CachedSolve(info.Values)
		if err != nil {
			// stored grids are validated on save
			panic(err)
		}
		if cached {
			log.Printf("Served cached solve of %q.", name)
		}
		sendJSON(w, http.StatusOK, result)
	case r.Method == "GET":
		sendJSON(w, http.StatusOK, info)
	case r.Method == "DELETE":
		storage.RemovePuzzle(name)
		log.Printf("Removed puzzle %q.", name)
		sendJSON(w, http.StatusOK, info)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func main() {
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer storage.Close()
	log.Printf("Connected to cache at %q and database at %q.", cacheId, databaseId)

	http.HandleFunc("/api/solve", guarded(solveHandler))
	http.HandleFunc("/api/check", guarded(checkHandler))
	http.HandleFunc("/api/puzzles", guarded(libraryHandler))
	http.HandleFunc("/api/puzzles/", guarded(libraryHandler))

	// environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	err = http.ListenAndServe(port, nil)
	if err != nil {
		log.Fatal("Listener failure: ", err)
	}
}
