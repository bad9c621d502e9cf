package adaptor

import (
	"fmt"
	"html/template"
	"net/http"

	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"
	"movie-catalog/web"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Page is the data every template receives.
type Page struct {
	Title     string
	User      *response.UserResponse
	Flashes   []session.Flash
	CSRFField template.HTML
	// Errors maps form field names to inline messages.
	Errors map[string]string
	// Form holds the submitted values to refill the form with.
	Form any
	Data any
}

var pageFiles = []string{
	"index.html",
	"add.html",
	"movie.html",
	"login.html",
	"signup.html",
	"notfound.html",
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Manager
	log      *zap.Logger
}

func NewRenderer(sessions *session.Manager, log *zap.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := template.New(name).ParseFS(web.Templates, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:    pages,
		sessions: sessions,
		log:      log.With(zap.String("component", "renderer")),
	}, nil
}

// Render fills in the per-request parts of page and writes the named page.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	tmpl, ok := v.pages[name]
	if !ok {
		v.log.Error("Unknown template", zap.String("template", name))
		utils.ResponseInternalError(w)
		return
	}

	if user, ok := utils.GetUser(r.Context()); ok {
		page.User = response.UserToResponse(user)
	}
	page.Flashes = append(page.Flashes, v.sessions.Flashes(w, r)...)
	page.CSRFField = csrf.TemplateField(r)

	if err := utils.ResponseHTML(w, status, tmpl, "layout", page); err != nil {
		v.log.Error("Failed to render template",
			zap.Error(err),
			zap.String("template", name),
		)
	}
}

func (v *Renderer) NotFound(w http.ResponseWriter, r *http.Request, message string) {
	page := Page{Title: "Not found"}
	if message != "" {
		page.Data = message
	}
	v.Render(w, r, http.StatusNotFound, "notfound.html", page)
}

// Flash queues a message for the next rendered page.
func (v *Renderer) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := v.sessions.AddFlash(w, r, category, message); err != nil {
		v.log.Warn("Failed to save flash", zap.Error(err))
	}
}

// Redirect queues a flash and sends the browser to url.
func (v *Renderer) Redirect(w http.ResponseWriter, r *http.Request, url, category, message string) {
	v.Flash(w, r, category, message)
	utils.ResponseRedirect(w, r, url)
}
