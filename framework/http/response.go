// Package http holds the JSON response helpers and the container
// introspection handler served by the application router.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/km-arc/go-ioc/framework/container"
)

// Response writes JSON envelopes: {"data": ...} on success and
// {"message": ...} on failure.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps w.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// JSON encodes data with the given status.
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 {"data": v}.
func (res *Response) Success(v any) { res.JSON(http.StatusOK, envelope{"data": v}) }

// Created sends 201 {"data": v}.
func (res *Response) Created(v any) { res.JSON(http.StatusCreated, envelope{"data": v}) }

// Text sends a plain-text body.
func (res *Response) Text(status int, body string) {
	res.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.w.WriteHeader(status)
	_, _ = res.w.Write([]byte(body))
}

// Error sends {"message": message} with status.
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

func (res *Response) BadRequest(message ...string) {
	res.Error(http.StatusBadRequest, first(message, "Bad request."))
}

func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// Fail maps a resolution error to a status: 404 for a missing
// registration, 500 for everything else.
//
//	svc, err := container.Resolve[Service](c)
//	if err != nil {
//	    res.Fail(err)
//	    return
//	}
func (res *Response) Fail(err error) {
	var mre *container.MaxRecursionError
	switch {
	case container.IsNotRegistered(err):
		res.NotFound(err.Error())
	case errors.As(err, &mre):
		res.ServerError("Dependency cycle detected.")
	default:
		res.ServerError(err.Error())
	}
}

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
