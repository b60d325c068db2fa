package api

import (
	"encoding/json"
	"net/http"

	"meister/internal/question"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type questionsResponse struct {
	Page      int                   `json:"page"`
	Tags      []string              `json:"tags"`
	Questions []question.BankRecord `json:"questions"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"encode_error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
