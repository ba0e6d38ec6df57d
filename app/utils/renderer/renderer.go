package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON renderer shared by all handlers.
func New(pretty bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    pretty,
		UnEscapeHTML:  true,
		StreamingJSON: false,
	})
}
