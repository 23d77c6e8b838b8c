package header

// Viewer is the identity the header is rendered for: either SignedIn or
// SignedOut.
type Viewer interface {
	viewer()
}

// SignedIn is an authenticated member, shown with an account menu.
type SignedIn struct {
	ID     string
	Name   string
	Avatar string

	// Notifications is nil when the identity provider could not tell.
	Notifications *int
}

func (SignedIn) viewer() {}

// SignedOut is an anonymous visitor, shown with a sign in link.
type SignedOut struct{}

func (SignedOut) viewer() {}

var (
	_ Viewer = SignedIn{}
	_ Viewer = SignedOut{}
)

func viewerKind(v Viewer) string {
	switch v.(type) {
	case SignedIn:
		return "signed_in"
	default:
		return "signed_out"
	}
}
