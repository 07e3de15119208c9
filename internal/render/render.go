// Package render configures the HTML templates behind the feed page.
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/internal/content"
	"github.com/litey/litey-go/internal/notes"
)

// FuncMap returns the template helpers available to every page.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"ipToUID":           content.IPToUID,
		"replaceNGWords":    content.ReplaceNGWords,
		"contentToLinkSets": content.ContentToLinkSets,
		"fromISOFormat":     notes.ParseDate,
		"isOverNHours": func(t time.Time, hours int) bool {
			return content.IsOverNHours(t, hours, time.Now())
		},
	}
}

// Load installs FuncMap and parses dir/*.html into the engine.
func Load(r *gin.Engine, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	pattern := filepath.Join(dir, "*.html")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no templates match %s", pattern)
	}
	r.SetFuncMap(FuncMap())
	r.LoadHTMLGlob(pattern)
	return nil
}
