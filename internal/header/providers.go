package header

import (
	"net/http"
	"net/url"
	"strings"
)

// Identity exposes the current viewer and the sign out action.
type Identity interface {
	Viewer(r *http.Request) Viewer
	Logout(w http.ResponseWriter, r *http.Request)
}

// Router exposes the path of the page the header belongs to.
type Router interface {
	CurrentPath(r *http.Request) string
}

// Viewport tells whether the page is displayed in a narrow layout.
type Viewport interface {
	IsMobile(r *http.Request) bool
}

type RouterFunc func(r *http.Request) string

// CurrentPath implements Router.
func (fn RouterFunc) CurrentPath(r *http.Request) string {
	return fn(r)
}

type ViewportFunc func(r *http.Request) bool

// IsMobile implements Viewport.
func (fn ViewportFunc) IsMobile(r *http.Request) bool {
	return fn(r)
}

// SignedOutIdentity never has a viewer and ignores logouts.
type SignedOutIdentity struct{}

// Viewer implements Identity.
func (SignedOutIdentity) Viewer(r *http.Request) Viewer {
	return SignedOut{}
}

// Logout implements Identity.
func (SignedOutIdentity) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

var _ Identity = SignedOutIdentity{}

const (
	FormValuePath  = "path"
	FormValueState = "state"

	HeaderHTMXCurrentURL = "HX-Current-URL"
)

// RequestRouter resolves the page path of the requests addressed to the
// header endpoints. They carry the page path in the "path" form value or,
// when issued by htmx, in the HX-Current-URL header. Page requests are
// rendered with Handler.View and never consult the router.
type RequestRouter struct{}

// CurrentPath implements Router.
func (RequestRouter) CurrentPath(r *http.Request) string {
	if path := r.FormValue(FormValuePath); path != "" {
		return path
	}

	if rawURL := r.Header.Get(HeaderHTMXCurrentURL); rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
			return u.Path
		}
	}

	return r.URL.Path
}

var _ Router = RequestRouter{}

const HeaderClientHintMobile = "Sec-CH-UA-Mobile"

var mobileUserAgentMarkers = []string{"Mobi", "Android", "iPhone", "iPod", "Windows Phone"}

// ClientHintViewport classifies the viewport with the Sec-CH-UA-Mobile client
// hint and falls back to the user agent.
type ClientHintViewport struct{}

// IsMobile implements Viewport.
func (ClientHintViewport) IsMobile(r *http.Request) bool {
	switch r.Header.Get(HeaderClientHintMobile) {
	case "?1":
		return true
	case "?0":
		return false
	}

	userAgent := r.UserAgent()
	for _, marker := range mobileUserAgentMarkers {
		if strings.Contains(userAgent, marker) {
			return true
		}
	}

	return false
}

var _ Viewport = ClientHintViewport{}
