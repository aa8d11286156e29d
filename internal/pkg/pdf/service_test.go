// internal/pkg/pdf/service_test.go
package pdf

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

func TestGenerateHTML(t *testing.T) {
	s := NewService(&config.Config{App: config.AppConfig{Name: "Storefront"}})

	html, err := s.generateHTML(blogData{
		SiteName:  "Storefront",
		Title:     "Caring For Leather Goods",
		Author:    "Priya",
		Published: "August 30, 2026",
		Excerpt:   "A primer on leather care.",
		Content:   template.HTML("<p>Wipe gently.</p>"),
	})
	require.NoError(t, err)
	require.Contains(t, html, "Caring For Leather Goods")
	require.Contains(t, html, "A primer on leather care.")
	require.Contains(t, html, "<p>Wipe gently.</p>")
}

func TestGenerateHTMLOmitsEmptyExcerpt(t *testing.T) {
	s := NewService(&config.Config{App: config.AppConfig{Name: "Storefront"}})

	html, err := s.generateHTML(blogData{
		SiteName: "Storefront",
		Title:    "Untitled",
		Content:  template.HTML("<p>Body.</p>"),
	})
	require.NoError(t, err)
	require.NotContains(t, html, `class="excerpt"`)
}
