package debug

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/courtside/internal/metric"
)

func TestHandler(t *testing.T) {
	reg := metric.NewRegistry()
	metric.NewCounter(reg, "debug_test_total", "Counter exposed by the debug handler test").Increment()

	handler := NewHandler("/debug", metric.Handler(reg))

	type testCase struct {
		Path             string
		ExpectedCode     int
		ExpectedFragment string
	}

	testCases := []testCase{
		{Path: "/debug/metrics", ExpectedCode: http.StatusOK, ExpectedFragment: "courtside_debug_test_total 1"},
		{Path: "/debug/vars", ExpectedCode: http.StatusOK, ExpectedFragment: `"memstats"`},
		{Path: "/debug/pprof/", ExpectedCode: http.StatusOK, ExpectedFragment: "goroutine"},
		{Path: "/debug/pprof/goroutine?debug=1", ExpectedCode: http.StatusOK, ExpectedFragment: "goroutine profile"},
		{Path: "/other", ExpectedCode: http.StatusNotFound},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}

			if tc.ExpectedFragment != "" && !strings.Contains(res.Body.String(), tc.ExpectedFragment) {
				t.Errorf("expected body to contain '%s'", tc.ExpectedFragment)
			}
		})
	}
}
