package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/store"
	"github.com/pkg/errors"
)

type fakeNotifications struct {
	count int
	err   error
}

func (f *fakeNotifications) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	return f.count, f.err
}

type fakeAvatars struct{}

func (fakeAvatars) URL(ctx context.Context, key string) (string, time.Time, error) {
	if key == "broken.png" {
		return "", time.Time{}, errors.New("storage unavailable")
	}

	return "/avatars/" + key, time.Time{}, nil
}

type otherUser struct{}

func (otherUser) UserSubject() string  { return "42" }
func (otherUser) UserProvider() string { return "github" }

func requestWithUser(user authn.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user == nil {
		return req
	}

	return req.WithContext(authn.WithContextUser(req.Context(), user))
}

func TestProviderViewer(t *testing.T) {
	type testCase struct {
		Name          string
		User          authn.User
		Notifications *fakeNotifications
		Expected      header.Viewer
	}

	three := 3

	testCases := []testCase{
		{
			Name:          "anonymous",
			Notifications: &fakeNotifications{},
			Expected:      header.SignedOut{},
		},
		{
			Name:          "store user",
			User:          &store.User{ID: 7, Nickname: "jdoe", Name: "John Doe", Avatar: "jd.png"},
			Notifications: &fakeNotifications{count: 3},
			Expected:      header.SignedIn{ID: "7", Name: "John Doe", Avatar: "/avatars/jd.png", Notifications: &three},
		},
		{
			Name:          "count failure",
			User:          &store.User{ID: 7, Email: "jdoe@example.net", Avatar: "broken.png"},
			Notifications: &fakeNotifications{err: errors.New("database locked")},
			Expected:      header.SignedIn{ID: "7", Name: "jdoe@example.net"},
		},
		{
			Name:          "foreign user",
			User:          otherUser{},
			Notifications: &fakeNotifications{},
			Expected:      header.SignedIn{ID: "github/42"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			provider := NewProvider(tc.Notifications, fakeAvatars{}, nil)

			viewer := provider.Viewer(requestWithUser(tc.User))

			switch expected := tc.Expected.(type) {
			case header.SignedOut:
				if _, ok := viewer.(header.SignedOut); !ok {
					t.Fatalf("viewer: expected SignedOut, got '%T'", viewer)
				}

			case header.SignedIn:
				signedIn, ok := viewer.(header.SignedIn)
				if !ok {
					t.Fatalf("viewer: expected SignedIn, got '%T'", viewer)
				}

				if e, g := expected.ID, signedIn.ID; e != g {
					t.Errorf("signedIn.ID: expected '%v', got '%v'", e, g)
				}

				if e, g := expected.Name, signedIn.Name; e != g {
					t.Errorf("signedIn.Name: expected '%v', got '%v'", e, g)
				}

				if e, g := expected.Avatar, signedIn.Avatar; e != g {
					t.Errorf("signedIn.Avatar: expected '%v', got '%v'", e, g)
				}

				switch {
				case expected.Notifications == nil && signedIn.Notifications != nil:
					t.Errorf("signedIn.Notifications: expected nil, got '%v'", *signedIn.Notifications)
				case expected.Notifications != nil && signedIn.Notifications == nil:
					t.Errorf("signedIn.Notifications: expected '%v', got nil", *expected.Notifications)
				case expected.Notifications != nil && *expected.Notifications != *signedIn.Notifications:
					t.Errorf("signedIn.Notifications: expected '%v', got '%v'", *expected.Notifications, *signedIn.Notifications)
				}
			}
		})
	}
}

func TestProviderLogout(t *testing.T) {
	called := false

	provider := NewProvider(&fakeNotifications{}, fakeAvatars{}, func(w http.ResponseWriter, r *http.Request) {
		called = true
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	res := httptest.NewRecorder()
	provider.Logout(res, httptest.NewRequest(http.MethodPost, "/header/logout", nil))

	if !called {
		t.Errorf("expected logout action to be called")
	}

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}
}
