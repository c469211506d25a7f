// Package clienttest provides a scriptable fake of the askql translation
// service for tests.
package clienttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Routes served by the fake.
const (
	RouteGenerate = "/generate-sql"
	RouteRun      = "/run-sql"
	RouteExplain  = "/explain"
)

// Response is what a route replies with. Body is JSON encoded unless it is
// a json.RawMessage or a string, which are written verbatim.
type Response struct {
	Status int
	Body   any
}

// Call records one request received by the fake.
type Call struct {
	Route  string
	Prompt string
	Query  string
	Header http.Header
}

// Handler produces the reply for a request. input is the prompt for
// /generate-sql and the query for the other routes.
type Handler func(input string) Response

// Server is an httptest server standing in for the service.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	handlers map[string]Handler
	gates    map[string]chan struct{}
	arrived  map[string]chan struct{}
}

// New starts a fake whose routes all answer 404 until configured.
// The server is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		handlers: make(map[string]Handler),
		gates:    make(map[string]chan struct{}),
		arrived:  make(map[string]chan struct{}),
	}

	r := chi.NewRouter()
	for _, route := range []string{RouteGenerate, RouteRun, RouteExplain} {
		r.Post(route, s.serve(route))
	}
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Handle installs h for route.
func (s *Server) Handle(route string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[route] = h
}

// Generates makes /generate-sql answer {"query": query}.
func (s *Server) Generates(query string) {
	s.Handle(RouteGenerate, func(string) Response {
		return Response{Status: http.StatusOK, Body: map[string]string{"query": query}}
	})
}

// Runs makes /run-sql answer {"result": <resultJSON>}.
func (s *Server) Runs(resultJSON string) {
	s.Handle(RouteRun, func(string) Response {
		return Response{Status: http.StatusOK, Body: json.RawMessage(`{"result":` + resultJSON + `}`)}
	})
}

// Explains makes /explain answer {"explanation": explanation}.
func (s *Server) Explains(explanation any) {
	s.Handle(RouteExplain, func(string) Response {
		return Response{Status: http.StatusOK, Body: map[string]any{"explanation": explanation}}
	})
}

// Fails makes route answer status with a FastAPI style detail body.
func (s *Server) Fails(route string, status int, detail string) {
	s.Handle(route, func(string) Response {
		return Response{Status: status, Body: map[string]string{"detail": detail}}
	})
}

// Block holds requests to route until the returned release func is called.
// The arrived channel is closed once the first blocked request reaches the
// server.
func (s *Server) Block(route string) (arrived <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gate := make(chan struct{})
	seen := make(chan struct{})
	s.gates[route] = gate
	s.arrived[route] = seen

	var once sync.Once
	return seen, func() { once.Do(func() { close(gate) }) }
}

// Calls returns a copy of the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests reached route.
func (s *Server) CallCount(route string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Route == route {
			n++
		}
	}
	return n
}

func (s *Server) serve(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Prompt string `json:"prompt"`
			Query  string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, `{"detail":"invalid JSON body"}`, http.StatusUnprocessableEntity)
			return
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{Route: route, Prompt: payload.Prompt, Query: payload.Query, Header: r.Header.Clone()})
		h := s.handlers[route]
		gate := s.gates[route]
		if seen, ok := s.arrived[route]; ok {
			close(seen)
			delete(s.arrived, route)
		}
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if h == nil {
			http.NotFound(w, r)
			return
		}

		input := payload.Query
		if route == RouteGenerate {
			input = payload.Prompt
		}
		writeResponse(w, h(input))
	}
}

func writeResponse(w http.ResponseWriter, resp Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	var body []byte
	switch b := resp.Body.(type) {
	case nil:
	case json.RawMessage:
		body = b
	case string:
		body = []byte(b)
	default:
		var err error
		body, err = json.Marshal(b)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
