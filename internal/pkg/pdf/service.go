// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/blog"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateBlogPDF renders a blog post as a printable PDF.
func (s *Service) GenerateBlogPDF(post *blog.Blog) (*bytes.Buffer, error) {
	data := blogData{
		SiteName:  s.config.App.Name,
		Title:     post.Title,
		Author:    post.Author,
		Published: post.CreatedAt.Format("January 2, 2006"),
		Excerpt:   post.Excerpt,
		Content:   template.HTML(post.Content),
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data blogData) (string, error) {
	tmpl := template.Must(template.New("blog").Parse(blogTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// blogData is the data passed to the blog template. Content is stored
// as trusted admin-authored HTML and rendered as-is.
type blogData struct {
	SiteName  string
	Title     string
	Author    string
	Published string
	Excerpt   string
	Content   template.HTML
}

// Blog post HTML template
const blogTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: Georgia, 'Times New Roman', serif;
            margin: 0;
            padding: 40px;
            color: #222;
            line-height: 1.6;
        }
        .site {
            font-size: 12px;
            text-transform: uppercase;
            letter-spacing: 2px;
            color: #888;
            margin-bottom: 30px;
        }
        h1 {
            font-size: 28px;
            margin: 0 0 10px 0;
        }
        .meta {
            font-size: 13px;
            color: #666;
            border-bottom: 1px solid #ddd;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .excerpt {
            font-size: 16px;
            font-style: italic;
            color: #444;
            margin-bottom: 20px;
        }
        .content {
            font-size: 15px;
        }
        .content img {
            max-width: 100%;
        }
    </style>
</head>
<body>
    <div class="site">{{.SiteName}}</div>
    <h1>{{.Title}}</h1>
    <div class="meta">
        {{if .Author}}By {{.Author}} &middot; {{end}}{{.Published}}
    </div>
    {{if .Excerpt}}<div class="excerpt">{{.Excerpt}}</div>{{end}}
    <div class="content">{{.Content}}</div>
</body>
</html>
`
