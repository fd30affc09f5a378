// Package httpkit re-exports the platform http surface for service modules
// modules import this one package instead of internal/platform/net/http
package httpkit

import (
	"encoding/json"
	"net/http"

	phttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/net/http"
)

type (
	// Envelope is the wire envelope every response rides in
	Envelope = phttp.Envelope

	// Page is the pagination block inside list envelopes
	Page = phttp.Page

	// Response carries status plus envelope back to the adapter
	Response = phttp.Response

	// Handler is the platform request handler
	Handler = phttp.Handler

	// Router is the platform routing seam
	Router = phttp.Router
)

// OK wraps data in a 200 envelope
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201 envelope
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns the empty 204 response
func NoContent() Response { return phttp.NoContent() }

// Data is OK under a name that reads better at some call sites
func Data(v any) Response { return phttp.Data(v) }

// Error maps err to its status and envelope via the platform error table
func Error(err error) Response { return phttp.Error(err) }

// List returns 200 with items and the pagination block filled in
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// JSON binds a strict JSON body into T before calling fn
// unknown fields fail the bind
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		var in T
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return phttp.Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Call adapts a body-less handler onto the envelope
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle mounts a Response returning function as-is
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
