// Package views renders the embedded HTML pages of the web UI.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v3"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by Render.
const (
	PageLanding   = "landing.html"
	PageView      = "view.html"
	PageNotFound  = "notfound.html"
	PageExpired   = "expired.html"
	PageReset     = "reset_password.html"
	PageDashboard = "admin_dashboard.html"
	PageAnalytics = "analytics.html"
	PagePlans     = "plans.html"
	PageSuccess   = "success.html"
)

// Renderer executes the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes the named page with the given status code.
func (r *Renderer) Render(ctx fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(status).Send(buf.Bytes())
}
