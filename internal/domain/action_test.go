package domain

import "testing"

func TestParseActionKind(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionKind
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Move", ActionMove},
		{"WAIT", ActionWait},
		{"PICKUP", ActionPickup},
		{"UNKNOWN_ACTION", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseActionKind(tt.input)
		if result != tt.expected {
			t.Errorf("ParseActionKind(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionKind_String(t *testing.T) {
	tests := []struct {
		kind     ActionKind
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionWait, "WAIT"},
		{ActionPickup, "PICKUP"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ActionKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestDirection_Delta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirNorth, 0, -1},
		{DirSouth, 0, 1},
		{DirWest, -1, 0},
		{DirEast, 1, 0},
		{DirNone, 0, 0},
	}

	for _, tt := range tests {
		dx, dy := tt.dir.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}

		// Round-trip через DirectionFromDelta
		if tt.dir != DirNone {
			if got := DirectionFromDelta(tt.dx, tt.dy); got != tt.dir {
				t.Errorf("DirectionFromDelta(%d,%d) = %v, want %v", tt.dx, tt.dy, got, tt.dir)
			}
		}
	}

	// Диагональ не является валидным направлением
	if got := DirectionFromDelta(1, 1); got != DirNone {
		t.Errorf("DirectionFromDelta(1,1) = %v, want DirNone", got)
	}
}
