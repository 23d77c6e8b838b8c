package header

type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) Toggle() MenuState {
	if s == MenuOpen {
		return MenuClosed
	}

	return MenuOpen
}

func (s MenuState) IsOpen() bool {
	return s == MenuOpen
}

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}

	return "closed"
}

// ParseMenuState reads the serialized state of the mobile menu. Unknown
// values are treated as closed.
func ParseMenuState(raw string) MenuState {
	if raw == MenuOpen.String() {
		return MenuOpen
	}

	return MenuClosed
}

// MarshalText implements encoding.TextMarshaler.
func (s MenuState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MenuState) UnmarshalText(data []byte) error {
	*s = ParseMenuState(string(data))
	return nil
}
