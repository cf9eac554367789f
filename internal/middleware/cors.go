package middleware

import (
	"github.com/valyala/fasthttp"
)

const (
	allowOrigin  = "*"
	allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowHeaders = "Content-Type"
)

// CORS adds permissive CORS headers to every response and answers OPTIONS on any
// path with 200 before routing.
func CORS(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", allowOrigin)
		ctx.Response.Header.Set("Access-Control-Allow-Methods", allowMethods)
		ctx.Response.Header.Set("Access-Control-Allow-Headers", allowHeaders)

		if ctx.IsOptions() {
			ctx.SetStatusCode(fasthttp.StatusOK)
			return
		}

		next(ctx)
	}
}
