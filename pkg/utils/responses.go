package utils

import (
	"bytes"
	"html/template"
	"net/http"
)

// ResponseHTML executes the named template into a buffer first so a template
// error never leaves a half-written page behind.
func ResponseHTML(w http.ResponseWriter, code int, tmpl *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		ResponseInternalError(w)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := buf.WriteTo(w)
	return err
}

// ResponseRedirect answers with 303 See Other so a POST is followed by a GET.
func ResponseRedirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// ResponseText writes a plain text body.
func ResponseText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(message))
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter) {
	ResponseText(w, http.StatusInternalServerError, "Internal server error")
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter) {
	ResponseText(w, http.StatusTooManyRequests, "Too many requests, slow down")
}
