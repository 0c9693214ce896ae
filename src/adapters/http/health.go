package http

import "net/http"

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "OK", nil)
}

func (s *Server) RouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func (s *Server) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
