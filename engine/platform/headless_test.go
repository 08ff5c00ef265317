package platform

import "testing"

func TestHeadlessPlatformStopsAfterMaxFrames(t *testing.T) {
	p := NewHeadlessPlatform(2)
	if err := p.Startup("test", 0, 0, 320, 240); err != nil {
		t.Fatal(err)
	}
	if !p.PumpMessages() || !p.PumpMessages() {
		t.Fatal("the first two pumps should keep running")
	}
	if p.PumpMessages() {
		t.Error("the third pump should stop the application")
	}
}

func TestHeadlessPlatformUnlimited(t *testing.T) {
	p := NewHeadlessPlatform(0)
	for i := 0; i < 1000; i++ {
		if !p.PumpMessages() {
			t.Fatalf("pump %d stopped an unlimited platform", i)
		}
	}
}
