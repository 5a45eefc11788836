// internal/report/printdoc.go
//
// Print export: the document rendered as a standalone branded HTML page
// the technician opens and prints from the OS. Logo resolution walks a
// bounded fallback chain and degrades to a text label rather than
// surfacing an error.

package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Branding carries the letterhead for the print document.
type Branding struct {
	Company   string
	Tagline   string
	LogoPaths []string
}

// ResolveLogo returns the first logo path that exists on disk. ok is
// false when the chain is exhausted and the company name should render
// as text instead.
func (b Branding) ResolveLogo() (string, bool) {
	for _, p := range b.LogoPaths {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

type printPage struct {
	Branding  Branding
	LogoPath  string
	HasLogo   bool
	Generated string
	Doc       Document
}

var printTemplate = template.Must(template.New("sds").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Branding.Company}} · Same Day Scope</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 48rem; color: #222; }
header { border-bottom: 3px solid #8b0000; padding-bottom: 1rem; margin-bottom: 1.5rem; }
header h1 { margin: 0; font-size: 1.6rem; }
header p { margin: 0.25rem 0 0; color: #666; }
header img { max-height: 64px; }
h2 { font-size: 1.05rem; text-transform: uppercase; letter-spacing: 0.05em; border-bottom: 1px solid #ccc; padding-bottom: 0.25rem; margin-top: 1.5rem; }
h3 { font-size: 1rem; margin: 1rem 0 0.25rem; }
ul { margin: 0.25rem 0 0.5rem 1.25rem; }
.room { margin-left: 0.75rem; }
.none { color: #888; font-style: italic; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #888; border-top: 1px solid #ccc; padding-top: 0.5rem; }
@media print { body { margin: 0.5in; } }
</style>
</head>
<body>
<header>
{{if .HasLogo}}<img src="{{.LogoPath}}" alt="{{.Branding.Company}}">{{else}}<h1>{{.Branding.Company}}</h1>{{end}}
{{if .Branding.Tagline}}<p>{{.Branding.Tagline}}</p>{{end}}
</header>

<h2>Schedule Instructions</h2>
{{if .Doc.ScheduleInstructions}}<p>{{.Doc.ScheduleInstructions}}</p>{{else}}<p class="none">None</p>{{end}}

<h2>Instruction Review</h2>
<p>{{.Doc.AgreementLine}}</p>

<h2>Event Instructions</h2>
{{if .Doc.EventLines}}<ul>{{range .Doc.EventLines}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="none">None</p>{{end}}

<h2>Service Offerings</h2>
{{if .Doc.Services}}<p>{{range $i, $s := .Doc.Services}}{{if $i}}, {{end}}{{$s}}{{end}}</p>{{else}}<p class="none">None</p>{{end}}

<h2>Anticipated Items</h2>
{{if .Doc.Anticipated}}<ul>{{range .Doc.Anticipated}}<li><strong>{{.Group}}</strong>: {{.Note}}</li>{{end}}</ul>{{else}}<p class="none">None</p>{{end}}

<h2>Pack-out Instructions</h2>
{{range .Doc.Floors}}
<h3>{{.Label}}</h3>
{{range .Rooms}}
<div class="room">
<strong>{{.Name}}</strong>
{{if .Take}}<div>Pack-out:</div><ul>{{range .Take}}<li>{{.Render}}</li>{{end}}</ul>{{end}}
{{if .Leave}}<div>Leave On-site:</div><ul>{{range .Leave}}<li>{{.Render}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
{{end}}

<footer>Generated {{.Generated}} · Same Day Scope</footer>
</body>
</html>
`))

// RenderPrintHTML produces the print page for a composed document.
func RenderPrintHTML(doc Document, branding Branding, now time.Time) (string, error) {
	logo, hasLogo := branding.ResolveLogo()
	page := printPage{
		Branding:  branding,
		LogoPath:  logo,
		HasLogo:   hasLogo,
		Generated: now.Format("January 2, 2006 3:04 PM"),
		Doc:       doc,
	}
	var b strings.Builder
	if err := printTemplate.Execute(&b, page); err != nil {
		return "", fmt.Errorf("report: render print document: %w", err)
	}
	return b.String(), nil
}

// WritePrintDocument renders the page into dir and returns the file path.
func WritePrintDocument(doc Document, branding Branding, dir string, now time.Time) (string, error) {
	html, err := RenderPrintHTML(doc, branding, now)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: ensure report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sds-%s.html", now.Format("20060102-150405")))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("report: write print document: %w", err)
	}
	return path, nil
}
