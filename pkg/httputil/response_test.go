package httputil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestDecodeJSON(t *testing.T) {
	var req struct {
		Username string `json:"username"`
	}

	ctx := &fasthttp.RequestCtx{}
	require.NoError(t, DecodeJSON(ctx, &req))
	require.Empty(t, req.Username)

	ctx.Request.SetBodyString(`{"username":"@alice"}`)
	require.NoError(t, DecodeJSON(ctx, &req))
	require.Equal(t, "@alice", req.Username)

	ctx.Request.SetBodyString(`{"username":`)
	require.Error(t, DecodeJSON(ctx, &req))
}

func TestWriteHealthResponse(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	WriteHealthResponse(ctx, MessageResponse{Message: "down"}, false)

	require.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	require.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	require.JSONEq(t, `{"message":"down"}`, string(ctx.Response.Body()))
}
