package note

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-notes/core/internal/pkg/response"
)

// exportTemplate escapes title and content. The exported page embeds user
// input, so unescaped interpolation would be a markup injection hole.
var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Content}}
</body>
</html>
`))

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// ExportFileName derives the download name from a note title: every rune
// outside [A-Za-z0-9_-] becomes an underscore.
func ExportFileName(title string) string {
	return filenameSanitizer.ReplaceAllString(title, "_") + ".html"
}

// RenderExport produces the standalone HTML document for a note.
func RenderExport(title, content string) ([]byte, error) {
	var buf bytes.Buffer
	err := exportTemplate.Execute(&buf, struct {
		Title   string
		Content string
	}{Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GET /notes/export-raw?title=&content=
func (h *Handler) exportRaw(c *gin.Context) {
	title := c.Query("title")
	content := c.Query("content")
	if title == "" || content == "" {
		response.BadRequest(c, "missing parameters")
		return
	}

	doc, err := RenderExport(title, content)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName(title)))
	c.Header("Cache-Control", "must-revalidate")
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
