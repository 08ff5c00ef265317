package math

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("integer clamp is wrong")
	}
	if Clamp(0.5, 0.0, 0.25) != 0.25 {
		t.Error("float clamp is wrong")
	}
}
