package web

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

var readmePolicy = bluemonday.UGCPolicy()

// renderReadme turns registry markdown into HTML that is safe to embed.
func renderReadme(md string) template.HTML {
	unsafe := blackfriday.MarkdownCommon([]byte(md))
	return template.HTML(readmePolicy.SanitizeBytes(unsafe))
}
