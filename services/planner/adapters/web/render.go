package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"study-planner/services/planner/core"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// mdRenderer leaves raw HTML escaped; WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

const (
	dateTimeLayout  = "2006-01-02 15:04"
	clockLayout     = "15:04"
	timestampLayout = "2006-01-02 15:04:05"
	unknownTime     = "?"
	noSubjectColor  = "#ddd"
)

var funcs = template.FuncMap{
	"markdown":  renderMarkdown,
	"date":      func(t time.Time) string { return t.Format(core.DateLayout) },
	"datetime":  func(t time.Time) string { return t.Format(dateTimeLayout) },
	"clock":     func(t time.Time) string { return t.Format(clockLayout) },
	"timestamp": func(t time.Time) string { return t.Format(timestampLayout) },
	"weekday":   func(t time.Time) string { return t.Format("Mon") },
	"sameDay": func(a, b time.Time) bool {
		return a.Format(core.DateLayout) == b.Format(core.DateLayout)
	},
	"endDatetime": func(t *time.Time) string { return formatOptional(t, dateTimeLayout) },
	"endClock":    func(t *time.Time) string { return formatOptional(t, clockLayout) },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"subjectColor": func(s *string) string {
		if s == nil || *s == "" {
			return noSubjectColor
		}
		return *s
	},
}

var pageTemplate = template.Must(template.New("planner").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func formatOptional(t *time.Time, layout string) string {
	if t == nil {
		return unknownTime
	}
	return t.Format(layout)
}

type pageData struct {
	core.Dashboard

	Self           string
	PrevWeek       string
	ThisWeek       string
	NextWeek       string
	CSRFField      template.HTML
	DefaultColor   string
	DefaultMinutes int
}

func newPageData(r *http.Request, d core.Dashboard, explicitWeek bool) pageData {
	path := r.URL.Path
	return pageData{
		Dashboard:      d,
		Self:           selfURL(path, d.WeekStart, explicitWeek),
		PrevWeek:       weekURL(path, d.WeekStart.AddDate(0, 0, -core.WindowDays)),
		ThisWeek:       path,
		NextWeek:       weekURL(path, d.WeekStart.AddDate(0, 0, core.WindowDays)),
		CSRFField:      csrf.TemplateField(r),
		DefaultColor:   core.DefaultSubjectColor,
		DefaultMinutes: core.DefaultEstimatedMinutes,
	}
}

func renderPage(w io.Writer, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "planner", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
