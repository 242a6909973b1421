package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// The real UI is a separate client application. The server keeps these
// page routes alive with a minimal shell so PageGuard's redirect
// behavior runs against actual routes.

var shellTmpl = template.Must(template.New("shell").Parse(`<!doctype html>
<html>
<head><title>{{.Title}}</title></head>
<body><h1>{{.Title}}</h1></body>
</html>
`))

// PageShell returns a handler rendering a named placeholder page.
func PageShell(title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var buf bytes.Buffer
		if err := shellTmpl.Execute(&buf, struct{ Title string }{Title: title}); err != nil {
			return c.String(http.StatusInternalServerError, "render failed")
		}
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}
