package rule

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestExpr(t *testing.T) {
	type testCase struct {
		Script        string
		Env           Env
		Expected      bool
		ShouldCompile bool
	}

	testCases := []testCase{
		{
			Script:        "",
			Env:           Env{},
			Expected:      true,
			ShouldCompile: true,
		},
		{
			Script:        SignedIn,
			Env:           Env{SignedIn: false},
			Expected:      false,
			ShouldCompile: true,
		},
		{
			Script:        SignedIn,
			Env:           Env{SignedIn: true},
			Expected:      true,
			ShouldCompile: true,
		},
		{
			Script:        `signedIn && mobile && path != "/history"`,
			Env:           Env{SignedIn: true, Mobile: true, Path: "/calendar"},
			Expected:      true,
			ShouldCompile: true,
		},
		{
			Script:        "notifications > 0",
			Env:           Env{Notifications: 3},
			Expected:      true,
			ShouldCompile: true,
		},
		{
			Script:        "name",
			ShouldCompile: false,
		},
		{
			Script:        "signedIn &&",
			ShouldCompile: false,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			r := New(tc.Script)

			if _, err := r.Compile(); err != nil {
				if tc.ShouldCompile {
					t.Fatalf("%+v", errors.WithStack(err))
				}

				return
			}

			if !tc.ShouldCompile {
				t.Fatalf("expected rule '%s' to fail compilation", tc.Script)
			}

			visible, err := r.Eval(tc.Env)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, visible; e != g {
				t.Errorf("visible: expected '%v', got '%v'", e, g)
			}
		})
	}
}
