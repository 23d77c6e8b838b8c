package header

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bornholm/courtside/pkg/log"
	"github.com/pkg/errors"
)

const (
	HeaderHTMXRequest = "HX-Request"

	// QueryMenu carries the mobile menu state across a non-htmx toggle.
	QueryMenu = "menu"
)

type Handler struct {
	mux      *http.ServeMux
	prefix   string
	nav      Navigation
	identity Identity
	router   Router
	viewport Viewport
	counters counters
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(identity Identity, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		mux:      http.NewServeMux(),
		prefix:   opts.Prefix,
		nav:      opts.Navigation,
		identity: identity,
		router:   opts.Router,
		viewport: opts.Viewport,
		counters: newCounters(opts.Registerer),
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/", h.prefix), h.serveFragment)
	h.mux.HandleFunc(fmt.Sprintf("POST %s/menu", h.prefix), h.serveToggle)
	h.mux.HandleFunc(fmt.Sprintf("POST %s/logout", h.prefix), h.serveLogout)

	return h
}

// View builds the header of the page served by r, with the mobile menu in
// the given state. The current path is the path of r itself.
func (h *Handler) View(r *http.Request, menu MenuState) View {
	return h.ViewPath(r, r.URL.Path, menu)
}

// ViewPath builds the header of the page at path for the viewer of r.
func (h *Handler) ViewPath(r *http.Request, path string, menu MenuState) View {
	in := Input{
		Viewer: h.identity.Viewer(r),
		Path:   path,
		Mobile: h.viewport.IsMobile(r),
		Menu:   menu,
	}

	view := Build(r.Context(), h.nav, in)
	view.ToggleHref = h.prefix + "/menu"
	view.LogoutHref = h.prefix + "/logout"

	h.counters.renders.Increment(viewerKind(in.Viewer))

	return view
}

// MenuFromRequest returns the initial menu state of a page request.
func MenuFromRequest(r *http.Request) MenuState {
	return ParseMenuState(r.URL.Query().Get(QueryMenu))
}

func (h *Handler) serveFragment(w http.ResponseWriter, r *http.Request) {
	menu := ParseMenuState(r.FormValue(FormValueState))
	h.render(w, r, h.ViewPath(r, h.router.CurrentPath(r), menu))
}

func (h *Handler) serveToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	menu := ParseMenuState(r.PostFormValue(FormValueState)).Toggle()

	h.counters.toggles.Increment(menu.String())

	if r.Header.Get(HeaderHTMXRequest) != "true" {
		redirectURL := url.URL{
			Path:     safePath(h.router.CurrentPath(r)),
			RawQuery: url.Values{QueryMenu: []string{menu.String()}}.Encode(),
		}

		http.Redirect(w, r, redirectURL.String(), http.StatusSeeOther)
		return
	}

	h.render(w, r, h.ViewPath(r, h.router.CurrentPath(r), menu))
}

func (h *Handler) serveLogout(w http.ResponseWriter, r *http.Request) {
	h.counters.logouts.Increment()
	h.identity.Logout(w, r)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, view View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := Render(w, view); err != nil {
		slog.ErrorContext(r.Context(), "could not render header", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// safePath restricts redirections to local absolute paths.
func safePath(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "\\") {
		return "/"
	}

	return path
}

var _ http.Handler = &Handler{}
