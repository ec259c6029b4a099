package httputil

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of requests that only report an outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes data as a JSON response with the given status
func WriteJSON(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	writeJSON(ctx, data, status)
}

// WriteErrorResponse writes an error JSON response
func WriteErrorResponse(ctx *fasthttp.RequestCtx, message string, status int) {
	writeJSON(ctx, ErrorResponse{Error: message}, status)
}

// WriteHealthResponse writes a health check response
func WriteHealthResponse(ctx *fasthttp.RequestCtx, data interface{}, healthy bool) {
	status := fasthttp.StatusOK
	if !healthy {
		status = fasthttp.StatusServiceUnavailable
	}
	writeJSON(ctx, data, status)
}

// DecodeJSON unmarshals the request body into v. An empty body leaves v untouched.
func DecodeJSON(ctx *fasthttp.RequestCtx, v interface{}) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// writeJSON writes JSON response to context
func writeJSON(ctx *fasthttp.RequestCtx, data interface{}, status int) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)

	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBody([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	ctx.SetBody(body)
}
