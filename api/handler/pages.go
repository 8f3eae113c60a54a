package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// PageHandler serves the pre-built site: public marketing pages and the
// dashboard shell. Content and layout live in the static directory; the
// route guard upstream decides whether a request gets this far.
type PageHandler struct {
	fs     fasthttp.RequestHandler
	logger *zap.Logger
}

func NewPageHandler(root string, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := &fasthttp.FS{
		Root:               root,
		IndexNames:         []string{"index.html"},
		GenerateIndexPages: false,
		AcceptByteRange:    true,
	}
	return &PageHandler{
		fs:     fs.NewRequestHandler(),
		logger: logger,
	}
}

func (h *PageHandler) Serve(ctx *fasthttp.RequestCtx) {
	h.fs(ctx)
}
