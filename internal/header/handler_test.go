package header

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/bornholm/courtside/internal/metric"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

type fakeIdentity struct {
	viewer  Viewer
	logouts int
}

func (i *fakeIdentity) Viewer(r *http.Request) Viewer {
	return i.viewer
}

func (i *fakeIdentity) Logout(w http.ResponseWriter, r *http.Request) {
	i.logouts++
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

var _ Identity = &fakeIdentity{}

func mobile(mobile bool) OptionFunc {
	return WithViewport(ViewportFunc(func(r *http.Request) bool { return mobile }))
}

func parseFragment(t *testing.T, res *httptest.ResponseRecorder) *html.Node {
	doc, err := html.Parse(res.Body)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return doc
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && slices.Contains(strings.Fields(attr.Val), class) {
			return true
		}
	}

	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func findAll(root *html.Node, match func(n *html.Node) bool) []*html.Node {
	var found []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)

	return found
}

func findByClass(root *html.Node, class string) []*html.Node {
	return findAll(root, func(n *html.Node) bool { return hasClass(n, class) })
}

func text(n *html.Node) string {
	var sb strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)

	return strings.TrimSpace(sb.String())
}

func linkHrefs(root *html.Node) []string {
	links := findAll(root, func(n *html.Node) bool { return n.Data == "a" })

	result := make([]string, 0, len(links))
	for _, l := range links {
		result = append(result, attr(l, "href"))
	}

	return result
}

func TestHandlerFragmentSignedOut(t *testing.T) {
	h := NewHandler(&fakeIdentity{viewer: SignedOut{}}, mobile(true))

	req := httptest.NewRequest(http.MethodGet, "/header/?path=/&state=open", nil)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	doc := parseFragment(t, res)

	if e, g := 0, len(findByClass(doc, "account-menu")); e != g {
		t.Errorf("account menus: expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(findByClass(doc, "notification-count")); e != g {
		t.Errorf("notification badges: expected '%v', got '%v'", e, g)
	}

	signIn := findByClass(doc, "sign-in")
	if e, g := 1, len(signIn); e != g {
		t.Fatalf("sign in links: expected '%v', got '%v'", e, g)
	}

	if e, g := "/auth/login", attr(signIn[0], "href"); e != g {
		t.Errorf("sign in href: expected '%v', got '%v'", e, g)
	}

	panels := findByClass(doc, "mobile-menu")
	if e, g := 1, len(panels); e != g {
		t.Fatalf("mobile panels: expected '%v', got '%v'", e, g)
	}

	for _, href := range []string{"/calendar", "/training", "/exercise-log", "/history"} {
		if slices.Contains(linkHrefs(doc), href) {
			t.Errorf("unexpected link '%s' for signed out viewer", href)
		}
	}
}

func TestHandlerFragmentSignedIn(t *testing.T) {
	h := NewHandler(&fakeIdentity{viewer: SignedIn{Name: "Jane Doe"}}, mobile(true))

	req := httptest.NewRequest(http.MethodGet, "/header/?path=/calendar&state=open", nil)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)

	doc := parseFragment(t, res)

	badges := findByClass(doc, "notification-count")
	if e, g := 1, len(badges); e != g {
		t.Fatalf("notification badges: expected '%v', got '%v'", e, g)
	}

	if e, g := "0", text(badges[0]); e != g {
		t.Errorf("notification badge: expected '%v', got '%v'", e, g)
	}

	initials := findByClass(doc, "avatar-initials")
	if e, g := 1, len(initials); e != g {
		t.Fatalf("avatar initials: expected '%v', got '%v'", e, g)
	}

	if e, g := "JD", text(initials[0]); e != g {
		t.Errorf("avatar initials: expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(findByClass(doc, "sign-in")); e != g {
		t.Errorf("sign in links: expected '%v', got '%v'", e, g)
	}

	panels := findByClass(doc, "mobile-menu")
	if e, g := 1, len(panels); e != g {
		t.Fatalf("mobile panels: expected '%v', got '%v'", e, g)
	}

	for _, href := range []string{"/calendar", "/training", "/exercise-log", "/history"} {
		if !slices.Contains(linkHrefs(panels[0]), href) {
			t.Errorf("missing mobile link '%s'", href)
		}
	}

	active := findByClass(doc, "is-active")
	activeHrefs := make([]string, 0)
	for _, n := range active {
		if n.Data == "a" {
			activeHrefs = append(activeHrefs, attr(n, "href"))
		}
	}

	if e, g := []string{"/calendar", "/calendar"}, activeHrefs; !slices.Equal(e, g) {
		t.Errorf("active links: expected '%v', got '%v'", e, g)
	}
}

func TestHandlerToggle(t *testing.T) {
	identity := &fakeIdentity{viewer: SignedIn{Name: "Jane Doe"}}
	h := NewHandler(identity, mobile(true))

	state := MenuClosed

	for i := 0; i < 4; i++ {
		form := url.Values{
			FormValueState: []string{state.String()},
			FormValuePath:  []string{"/training"},
		}

		req := httptest.NewRequest(http.MethodPost, "/header/menu", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set(HeaderHTMXRequest, "true")

		res := httptest.NewRecorder()

		h.ServeHTTP(res, req)

		if e, g := http.StatusOK, res.Code; e != g {
			t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
		}

		doc := parseFragment(t, res)

		inputs := findAll(doc, func(n *html.Node) bool {
			return n.Data == "input" && attr(n, "name") == FormValueState
		})
		if e, g := 1, len(inputs); e != g {
			t.Fatalf("state inputs: expected '%v', got '%v'", e, g)
		}

		state = ParseMenuState(attr(inputs[0], "value"))

		expected := MenuOpen
		if i%2 == 1 {
			expected = MenuClosed
		}

		if e, g := expected, state; e != g {
			t.Errorf("state after toggle #%d: expected '%v', got '%v'", i+1, e, g)
		}

		if e, g := state.IsOpen(), len(findByClass(doc, "mobile-menu")) == 1; e != g {
			t.Errorf("mobile panel rendered after toggle #%d: expected '%v', got '%v'", i+1, e, g)
		}
	}

	if e, g := 0, identity.logouts; e != g {
		t.Errorf("identity.logouts: expected '%v', got '%v'", e, g)
	}
}

func TestHandlerToggleWithoutHTMX(t *testing.T) {
	type testCase struct {
		Path     string
		Expected string
	}

	testCases := []testCase{
		{Path: "/history", Expected: "/history?menu=open"},
		{Path: "//evil.example.com", Expected: "/?menu=open"},
		{Path: "https://evil.example.com", Expected: "/?menu=open"},
	}

	h := NewHandler(&fakeIdentity{viewer: SignedOut{}})

	for _, tc := range testCases {
		form := url.Values{
			FormValueState: []string{MenuClosed.String()},
			FormValuePath:  []string{tc.Path},
		}

		req := httptest.NewRequest(http.MethodPost, "/header/menu", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		res := httptest.NewRecorder()

		h.ServeHTTP(res, req)

		if e, g := http.StatusSeeOther, res.Code; e != g {
			t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
		}

		if e, g := tc.Expected, res.Header().Get("Location"); e != g {
			t.Errorf("Location: expected '%v', got '%v'", e, g)
		}
	}
}

func TestHandlerLogout(t *testing.T) {
	identity := &fakeIdentity{viewer: SignedIn{Name: "Jane Doe"}}

	reg := metric.NewRegistry()
	h := NewHandler(identity, WithRegisterer(reg))

	req := httptest.NewRequest(http.MethodPost, "/header/logout", nil)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)

	if e, g := 1, identity.logouts; e != g {
		t.Errorf("identity.logouts: expected '%v', got '%v'", e, g)
	}

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found := false
	for _, f := range families {
		if f.GetName() == "courtside_header_logouts_total" {
			found = true
			break
		}
	}

	if !found {
		t.Errorf("expected logout counter to be registered")
	}
}

func TestHandlerPageViewUsesRequestPath(t *testing.T) {
	h := NewHandler(&fakeIdentity{viewer: SignedIn{Name: "Jane Doe"}}, mobile(true))

	req := httptest.NewRequest(http.MethodGet, "/public/news?path=/calendar", nil)
	req.Header.Set(HeaderHTMXCurrentURL, "https://team.example.com/history")

	view := h.View(req, MenuOpen)

	if e, g := "/public/news", view.Path; e != g {
		t.Errorf("view.Path: expected '%v', got '%v'", e, g)
	}

	links := append(slices.Clone(view.Primary), view.Panel.Links...)

	for _, l := range links {
		if e, g := l.Href == "/public/news", l.Active; e != g {
			t.Errorf("link '%s' active: expected '%v', got '%v'", l.Href, e, g)
		}
	}
}

func TestHandlerViewPath(t *testing.T) {
	h := NewHandler(&fakeIdentity{viewer: SignedIn{Name: "Jane Doe"}})

	req := httptest.NewRequest(http.MethodGet, "/api/header", nil)

	view := h.ViewPath(req, "/calendar", MenuClosed)

	if e, g := "/calendar", view.Path; e != g {
		t.Errorf("view.Path: expected '%v', got '%v'", e, g)
	}

	active := 0
	for _, l := range view.Primary {
		if l.Active {
			active++
		}
	}

	if e, g := 1, active; e != g {
		t.Errorf("active links: expected '%v', got '%v'", e, g)
	}
}
