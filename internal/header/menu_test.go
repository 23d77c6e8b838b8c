package header

import (
	"fmt"
	"testing"
)

func TestMenuStateToggle(t *testing.T) {
	var state MenuState

	if e, g := MenuClosed, state; e != g {
		t.Fatalf("initial state: expected '%v', got '%v'", e, g)
	}

	for i := 1; i <= 7; i++ {
		state = state.Toggle()

		expected := MenuClosed
		if i%2 == 1 {
			expected = MenuOpen
		}

		if e, g := expected, state; e != g {
			t.Errorf("state after %d toggles: expected '%v', got '%v'", i, e, g)
		}
	}
}

func TestParseMenuState(t *testing.T) {
	type testCase struct {
		Raw      string
		Expected MenuState
	}

	testCases := []testCase{
		{Raw: "open", Expected: MenuOpen},
		{Raw: "closed", Expected: MenuClosed},
		{Raw: "", Expected: MenuClosed},
		{Raw: "OPEN", Expected: MenuClosed},
		{Raw: "garbage", Expected: MenuClosed},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, ParseMenuState(tc.Raw); e != g {
				t.Errorf("ParseMenuState(%q): expected '%v', got '%v'", tc.Raw, e, g)
			}
		})
	}
}
