package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"codeberg.org/snonux/voxtrain/internal/corpus"
	"codeberg.org/snonux/voxtrain/internal/folder"
	"codeberg.org/snonux/voxtrain/internal/sentence"
	"codeberg.org/snonux/voxtrain/internal/synth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] failed to encode response: %v", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes: bad input is the
// client's fault, vendor trouble is upstream, everything else is ours.
func writeError(w http.ResponseWriter, err error) {
	var status int

	var verr *sentence.ValidationError
	var serr *synth.ValidationError
	var ferr *folder.ValidationError
	var cerr *sentence.CapabilityError

	switch {
	case errors.As(err, &verr), errors.As(err, &serr), errors.As(err, &ferr):
		status = http.StatusBadRequest
	case errors.Is(err, corpus.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, corpus.ErrDuplicate), errors.Is(err, folder.ErrEmptyArchive):
		status = http.StatusConflict
	case errors.As(err, &cerr):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		log.Printf("[WARN] request failed: %v", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &sentence.ValidationError{Field: "body", Reason: "malformed JSON request"}
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("[INFO] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
