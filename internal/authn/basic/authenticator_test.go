package basic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/pkg/errors"
)

type testUser struct{}

func (u *testUser) UserSubject() string  { return "coach" }
func (u *testUser) UserProvider() string { return "test" }

var provider = UserProviderFunc(func(ctx context.Context, username, password string) (authn.User, error) {
	if username == "coach" && password == "s3cret" {
		return &testUser{}, nil
	}

	return nil, errors.WithStack(authn.ErrUnauthenticated)
})

func TestAuthenticator(t *testing.T) {
	type testCase struct {
		Username      string
		Password      string
		Authoritative bool
		ExpectUser    bool
		ExpectedError error
		ExpectedCode  int
	}

	testCases := []testCase{
		{Username: "coach", Password: "s3cret", Authoritative: true, ExpectUser: true, ExpectedCode: http.StatusOK},
		{Username: "coach", Password: "wrong", Authoritative: true, ExpectedError: authn.ErrCancel, ExpectedCode: http.StatusUnauthorized},
		{Username: "coach", Password: "wrong", Authoritative: false, ExpectedCode: http.StatusOK},
		{Authoritative: true, ExpectedError: authn.ErrCancel, ExpectedCode: http.StatusUnauthorized},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/header", nil)
			if tc.Username != "" {
				req.SetBasicAuth(tc.Username, tc.Password)
			}

			res := httptest.NewRecorder()

			user, err := NewAuthenticator(provider, "courtside", tc.Authoritative).Authenticate(res, req)

			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Errorf("err: expected '%v', got '%v'", tc.ExpectedError, err)
				}
			} else if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectUser, user != nil; e != g {
				t.Errorf("user != nil: expected '%v', got '%v'", e, g)
			}

			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}

			if tc.ExpectedCode == http.StatusUnauthorized {
				if e, g := `Basic realm="courtside", charset="UTF-8"`, res.Header().Get("WWW-Authenticate"); e != g {
					t.Errorf("WWW-Authenticate: expected '%v', got '%v'", e, g)
				}
			}
		})
	}
}
