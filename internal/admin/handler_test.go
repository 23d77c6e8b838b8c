package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bornholm/courtside/internal/authn"
	"github.com/bornholm/courtside/internal/header"
	"github.com/bornholm/courtside/internal/identity"
	"github.com/bornholm/courtside/internal/store"
	"github.com/pkg/errors"
)

type testAdmin struct {
	handler *Handler
	store   *store.Store
	coach   *store.User
	player  *store.User
}

func newTestAdmin(t *testing.T) *testAdmin {
	t.Helper()

	ctx := context.Background()

	st := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	createUser := func(subject string, attrs store.UserAttributes) *store.User {
		user, err := st.FindOrCreateUser(ctx, subject, "github")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		user, _, err = st.ConnectUser(ctx, user.ID, attrs)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		return user
	}

	coach := createUser("1", store.UserAttributes{Nickname: "Carla Coach", Email: "coach@example.net", IsAdmin: true})
	player := createUser("2", store.UserAttributes{Nickname: "Pedro Pivô", Email: "pedro@example.net"})

	headerHandler := header.NewHandler(identity.NewProvider(st, nil, nil))

	return &testAdmin{
		handler: NewHandler("/admin", headerHandler, st),
		store:   st,
		coach:   coach,
		player:  player,
	}
}

func (a *testAdmin) serve(req *http.Request, user *store.User) *httptest.ResponseRecorder {
	if user != nil {
		req = req.WithContext(authn.WithContextUser(req.Context(), user))
	}

	res := httptest.NewRecorder()
	a.handler.ServeHTTP(res, req)

	return res
}

func TestMembersAccess(t *testing.T) {
	admin := newTestAdmin(t)

	type testCase struct {
		User            *store.User
		ExpectedCode    int
		ExpectedContent []string
	}

	testCases := []testCase{
		{User: nil, ExpectedCode: http.StatusUnauthorized},
		{User: admin.player, ExpectedCode: http.StatusForbidden},
		{
			User:         admin.coach,
			ExpectedCode: http.StatusOK,
			ExpectedContent: []string{
				`id="site-header"`,
				`<span class="tag is-rounded">CC</span>`,
				`<span class="tag is-rounded">PP</span>`,
				`action="/admin/notifications"`,
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			res := admin.serve(httptest.NewRequest(http.MethodGet, "/admin/", nil), tc.User)

			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
			}

			body := res.Body.String()
			for _, content := range tc.ExpectedContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected body to contain '%s'", content)
				}
			}
		})
	}
}

func TestSendNotification(t *testing.T) {
	type testCase struct {
		Form            url.Values
		ExpectedCode    int
		ExpectedCoach   int
		ExpectedPlayer  int
		ExpectedContent string
	}

	testCases := []testCase{
		{
			Form:           url.Values{"recipient": {"all"}, "message": {"Jogo adiado"}, "link": {"/calendar"}},
			ExpectedCode:   http.StatusSeeOther,
			ExpectedCoach:  1,
			ExpectedPlayer: 1,
		},
		{
			Form:           url.Values{"message": {"Treino extra"}},
			ExpectedCode:   http.StatusSeeOther,
			ExpectedCoach:  1,
			ExpectedPlayer: 1,
		},
		{
			Form:            url.Values{"recipient": {"all"}, "message": {"  "}},
			ExpectedCode:    http.StatusBadRequest,
			ExpectedContent: "A mensagem é obrigatória.",
		},
		{
			Form:            url.Values{"recipient": {"all"}, "message": {"Veja"}, "link": {"https://example.net"}},
			ExpectedCode:    http.StatusBadRequest,
			ExpectedContent: "O link deve começar por",
		},
		{
			Form:            url.Values{"recipient": {"all"}, "message": {strings.Repeat("a", maxMessageLength+1)}},
			ExpectedCode:    http.StatusBadRequest,
			ExpectedContent: "no máximo",
		},
		{
			Form:         url.Values{"recipient": {"999"}, "message": {"Olá"}},
			ExpectedCode: http.StatusNotFound,
		},
		{
			Form:         url.Values{"recipient": {"abc"}, "message": {"Olá"}},
			ExpectedCode: http.StatusBadRequest,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			admin := newTestAdmin(t)

			req := httptest.NewRequest(http.MethodPost, "/admin/notifications", strings.NewReader(tc.Form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			res := admin.serve(req, admin.coach)

			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
			}

			if tc.ExpectedContent != "" && !strings.Contains(res.Body.String(), tc.ExpectedContent) {
				t.Errorf("expected body to contain '%s'", tc.ExpectedContent)
			}

			assertUnread(t, admin.store, admin.coach, tc.ExpectedCoach)
			assertUnread(t, admin.store, admin.player, tc.ExpectedPlayer)
		})
	}
}

func TestSendNotificationToMember(t *testing.T) {
	admin := newTestAdmin(t)

	form := url.Values{"recipient": {fmt.Sprintf("%d", admin.player.ID)}, "message": {"Traga o uniforme"}}

	req := httptest.NewRequest(http.MethodPost, "/admin/notifications", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res := admin.serve(req, admin.coach)

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	location, err := url.Parse(res.Header().Get("Location"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "/admin/", location.Path; e != g {
		t.Errorf("location.Path: expected '%v', got '%v'", e, g)
	}

	if e, g := "Aviso enviado para Pedro Pivô.", location.Query().Get("flash"); e != g {
		t.Errorf("flash: expected '%v', got '%v'", e, g)
	}

	assertUnread(t, admin.store, admin.coach, 0)
	assertUnread(t, admin.store, admin.player, 1)
}

func assertUnread(t *testing.T, st *store.Store, user *store.User, expected int) {
	t.Helper()

	count, err := st.CountUnreadNotifications(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := expected, count; e != g {
		t.Errorf("unread notifications of '%s': expected '%v', got '%v'", user.DisplayName(), e, g)
	}
}
