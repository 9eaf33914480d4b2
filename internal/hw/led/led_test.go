package led

import "testing"

func TestNewController_MockMode(t *testing.T) {
	ctl, err := NewController(true, DefaultPin)
	if err != nil {
		t.Fatalf("NewController(mock): %v", err)
	}
	if _, ok := ctl.(*MockController); !ok {
		t.Errorf("NewController(mock) returned %T, want *MockController", ctl)
	}
}

func TestMockController_RemembersState(t *testing.T) {
	ctl := &MockController{}

	if err := ctl.Set(true); err != nil {
		t.Fatalf("Set(true): %v", err)
	}
	if !ctl.On {
		t.Error("LED should be on after Set(true)")
	}
	if err := ctl.Set(false); err != nil {
		t.Fatalf("Set(false): %v", err)
	}
	if ctl.On {
		t.Error("LED should be off after Set(false)")
	}
	if err := ctl.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
