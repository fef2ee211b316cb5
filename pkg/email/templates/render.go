// Package templates renders the kind-specific email representation of a
// notification from templates embedded at build time.
//
// Rendering is pure: the same kind and payload always produce the same
// subject, HTML, and text output. The renderer satisfies
// notifier.TemplateRenderer.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/flowvault/flowvault/pkg/notifier"
)

//go:embed files/*.html files/*.txt
var files embed.FS

// subjects are small text templates executed against the payload.
var subjects = map[notifier.Kind]string{
	notifier.KindOverageAlert:   "Usage overage: {{.Metric}} exceeded your plan limit",
	notifier.KindBillingUpdate:  "Billing update for invoice {{.InvoiceID}}",
	notifier.KindSystemAlert:    "{{.Title}}",
	notifier.KindUsageWarning:   "Approaching your {{.Metric}} limit",
	notifier.KindWorkflowUpdate: "Workflow change: {{.WorkflowID}}",
	notifier.KindAuditLog:       "Audit event: {{.Action}}",
}

// Renderer renders notification emails from the embedded template set.
type Renderer struct {
	html     *template.Template
	text     *texttemplate.Template
	subjects map[notifier.Kind]*texttemplate.Template
}

// New parses the embedded templates. It panics on a malformed template set
// because that is a build defect, not a runtime condition.
func New() *Renderer {
	r := &Renderer{
		html:     template.Must(template.ParseFS(files, "files/*.html")),
		text:     texttemplate.Must(texttemplate.ParseFS(files, "files/*.txt")),
		subjects: make(map[notifier.Kind]*texttemplate.Template, len(subjects)),
	}
	for kind, tpl := range subjects {
		r.subjects[kind] = texttemplate.Must(texttemplate.New(string(kind)).Parse(tpl))
	}
	return r
}

// Render implements notifier.TemplateRenderer.
func (r *Renderer) Render(kind notifier.Kind, payload notifier.Payload) (notifier.RenderedEmail, error) {
	subjectTpl, exists := r.subjects[kind]
	if !exists {
		return notifier.RenderedEmail{}, fmt.Errorf("templates: no template for kind %q", kind)
	}

	var subject, html, text strings.Builder

	if err := subjectTpl.Execute(&subject, payload); err != nil {
		return notifier.RenderedEmail{}, fmt.Errorf("templates: render subject for %q: %w", kind, err)
	}
	if err := r.html.ExecuteTemplate(&html, string(kind)+".html", payload); err != nil {
		return notifier.RenderedEmail{}, fmt.Errorf("templates: render html for %q: %w", kind, err)
	}
	if err := r.text.ExecuteTemplate(&text, string(kind)+".txt", payload); err != nil {
		return notifier.RenderedEmail{}, fmt.Errorf("templates: render text for %q: %w", kind, err)
	}

	return notifier.RenderedEmail{
		Subject: subject.String(),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
