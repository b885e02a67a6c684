// Package chocotest provides an in-process fake of the analytics API.
package chocotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Request is a recorded incoming call.
type Request struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// Server serves the fixture data. Fields may be changed before the first
// request; use Fail to inject errors.
type Server struct {
	*httptest.Server

	User      map[string]any
	Terminals []map[string]any
	Customers []map[string]any
	// Total overrides meta.page.total of the customer list when non-zero.
	Total     int
	PageSize  int
	Details   map[int64]map[string]any
	Histories map[int64][]map[string]any
	Branches  map[int64]map[string]any

	mu       sync.Mutex
	failures map[string]int
	requests []Request
}

func NewServer() *Server {
	s := &Server{
		PageSize:  100,
		Details:   map[int64]map[string]any{},
		Histories: map[int64][]map[string]any{},
		Branches:  map[int64]map[string]any{},
		failures:  map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/user/", s.handleUser)
	mux.HandleFunc("GET /acl/v3/staff/terminals", s.handleTerminals)
	mux.HandleFunc("GET /analytics/v1/customers", s.handleCustomers)
	mux.HandleFunc("GET /analytics/v1/customer/{id}", s.handleDetails)
	mux.HandleFunc("GET /analytics/v1/customer/{id}/payment-history", s.handleHistory)
	mux.HandleFunc("GET /segments/rahmetbiz/main", s.handleBranch)

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Fail makes every request whose path starts with prefix answer status.
func (s *Server) Fail(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[prefix] = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the recorded requests with exactly this path.
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		status := 0
		for prefix, code := range s.failures {
			if strings.HasPrefix(r.URL.Path, prefix) {
				status = code
			}
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleUser(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"data": s.User})
}

func (s *Server) handleTerminals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"data": s.Terminals})
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		http.Error(w, "bad page", http.StatusBadRequest)
		return
	}

	from := (page - 1) * s.PageSize
	to := from + s.PageSize
	items := []map[string]any{}
	if from < len(s.Customers) {
		if to > len(s.Customers) {
			to = len(s.Customers)
		}
		items = s.Customers[from:to]
	}

	total := s.Total
	if total == 0 {
		total = len(s.Customers)
	}
	writeJSON(w, map[string]any{
		"data": items,
		"meta": map[string]any{"page": map[string]any{"total": total}},
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	details, found := s.Details[id]
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{"data": details})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	history := s.Histories[id]
	if history == nil {
		history = []map[string]any{}
	}
	writeJSON(w, map[string]any{"data": history})
}

func (s *Server) handleBranch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("filial_ids[]"), 10, 64)
	if err != nil {
		http.Error(w, "bad filial id", http.StatusBadRequest)
		return
	}
	stats, found := s.Branches[id]
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{"data": stats})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
