package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eseidel/slide-puzzle/puzzle"
	"github.com/eseidel/slide-puzzle/storage"
)

const cookieName = "slidePuzzleID"
const cookiePath = "/"

var (
	startTime = time.Now()
	rndMutex  sync.Mutex
	rnd       = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// Each browser gets a cookie based on the time (to the
// nanosecond) of the first request we received from it.  Because
// proxied deployments mix HTTP and HTTPS traffic onto the same
// server instance, the forwarded protocol is folded into the
// session ID, so tabs using different source protocols get
// different sessions even when they submit each other's cookies.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		proto = forwarded
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no session cookie or not a valid session cookie,
	// start a new session with a new cookie
	sid := proto + "-" + strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// sessionSelect finds the storage-backed session for the request,
// starting a fresh one on the default board when the cookie is
// new or its saved state has been lost.
func sessionSelect(w http.ResponseWriter, r *http.Request) *storage.Session {
	sessionID := getCookie(w, r)
	session := &storage.Session{SID: sessionID}
	if session.Lookup() {
		session.LoadStep()
		return session
	}
	session.Created = time.Now().Format(time.RFC3339)
	session.StartBoard("default")
	return session
}

// scrambler randomizes a puzzle.  The shared source is
// interlocked because handlers run concurrently.
func scrambler(p puzzle.Puzzle) puzzle.Puzzle {
	rndMutex.Lock()
	defer rndMutex.Unlock()
	return p.Scramble(rnd)
}

// apiHandler dispatches the JSON API.
func apiHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	switch path := r.URL.Path; {
	case path == "/api/state":
		puzzle.StateHandler(session.Puzzle, w, r)
	case path == "/api/summary":
		puzzle.SummaryHandler(session.Puzzle, w, r)
	case path == "/api/boards":
		boardsHandler(w, r)
	case path == "/api/click" && r.Method == "POST":
		next, e := puzzle.ClickHandler(session.Puzzle, w, r)
		if e != nil {
			log.Printf("Click failed, returned error, no session change.")
		} else if next != nil {
			session.AddStep(next)
		}
	case path == "/api/back" && r.Method == "POST":
		session.RemoveStep()
		puzzle.StateHandler(session.Puzzle, w, r)
	case path == "/api/scramble" && r.Method == "POST":
		session.AddStep(scrambler(session.Puzzle))
		puzzle.StateHandler(session.Puzzle, w, r)
	case path == "/api/reset" && r.Method == "POST":
		next, e := puzzle.ResetHandler(session.Puzzle, scrambler, w, r)
		if e != nil {
			log.Printf("Reset failed, returned error, no session change.")
		} else if next != nil {
			session.AddStep(next)
		}
	case strings.HasPrefix(path, "/api/board/") && r.Method == "POST":
		session.StartBoard(path[len("/api/board/"):])
		puzzle.StateHandler(session.Puzzle, w, r)
	case path == "/api/solve":
		solveHandler(session, w, r)
	default:
		http.NotFound(w, r)
	}
}

// boardsHandler returns the stored board catalog.
func boardsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(storage.LoadCatalog(), http.StatusOK, w)
}

// solveHandler returns the clicks that solve the session's
// current arrangement.  Solutions are cached in storage by
// arrangement key, so repeated requests for the same arrangement
// (from any session) skip the search.
func solveHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	key := session.Puzzle.Key()
	moves, found := storage.LookupSolution(key)
	if !found {
		solution, e := puzzle.NewSolver(session.Puzzle).Solve()
		if e != nil {
			writeJSON(e, http.StatusBadRequest, w)
			return
		}
		moves = solution.Moves()
		storage.SaveSolution(key, moves)
		log.Printf("Solved %q in %d moves.", key, len(moves))
	}
	writeJSON(struct {
		Moves []int `json:"moves"`
	}{moves}, http.StatusOK, w)
}

// writeJSON encodes a non-puzzle response.
func writeJSON(obj interface{}, status int, w http.ResponseWriter) {
	bytes, e := json.Marshal(obj)
	if e != nil {
		http.Error(w, e.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

// errorHandler wraps a handler against panics out of the storage
// layer, which signal lost backing services rather than bugs in
// the request.
func errorHandler(handler func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				log.Printf("Handler panic on %s %s: %v", r.Method, r.URL.Path, e)
				http.Error(w, "Storage failure; try again later", http.StatusInternalServerError)
			}
		}()
		handler(w, r)
	}
}

func main() {
	cacheID, databaseID, err := storage.Connect()
	if err != nil {
		log.Fatal("Storage connection failure: ", err)
	}
	defer storage.Close()
	log.Printf("Connected to cache at %q, database at %q.", cacheID, databaseID)

	http.HandleFunc("/", errorHandler(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Handling %s %s...", r.Method, r.URL.Path)
		session := sessionSelect(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			apiHandler(session, w, r)
			return
		}
		http.Redirect(w, r, "/api/state", http.StatusFound)
	}))

	// Heroku environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	if err := http.ListenAndServe(port, nil); err != nil {
		log.Fatal("Listener failure: ", err)
	}
}
