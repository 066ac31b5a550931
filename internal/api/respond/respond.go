// Package respond writes JSON API responses.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type successResponse struct {
	Result interface{} `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes a 200 response wrapping result.
func OK(w http.ResponseWriter, result interface{}) {
	JSON(w, http.StatusOK, successResponse{Result: result})
}

// Created writes a 201 response wrapping result.
func Created(w http.ResponseWriter, result interface{}) {
	JSON(w, http.StatusCreated, successResponse{Result: result})
}

// Fail writes an error response.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, errorResponse{Error: err.Error()})
}
