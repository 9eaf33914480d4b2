package picam

import (
	"errors"
	"testing"
	"time"
)

func TestMockHandle_Defaults(t *testing.T) {
	h := NewMockHandle()
	if h.Res.Width != DefaultWidth || h.Res.Height != DefaultHeight {
		t.Errorf("default resolution = %dx%d, want %dx%d",
			h.Res.Width, h.Res.Height, DefaultWidth, DefaultHeight)
	}
}

func TestMockHandle_RecordingLifecycle(t *testing.T) {
	h := NewMockHandle()

	if err := h.WaitRecording(time.Second); err == nil {
		t.Error("WaitRecording before StartRecording should error")
	}
	if err := h.StopRecording(); err == nil {
		t.Error("StopRecording before StartRecording should error")
	}

	if err := h.StartRecording("vid.h264", 100); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if err := h.StartRecording("other.h264", 100); err == nil {
		t.Error("double StartRecording should error")
	}
	if err := h.WaitRecording(3 * time.Second); err != nil {
		t.Fatalf("WaitRecording: %v", err)
	}
	if err := h.StopRecording(); err != nil {
		t.Fatalf("StopRecording: %v", err)
	}

	if h.Waited != 3*time.Second {
		t.Errorf("waited = %v, want 3s", h.Waited)
	}
	if h.RecordPath != "vid.h264" || h.RecordQuality != 100 {
		t.Errorf("record path/quality = %q/%d, want vid.h264/100", h.RecordPath, h.RecordQuality)
	}
}

func TestMockHandle_PropertyErrInjection(t *testing.T) {
	h := NewMockHandle()
	want := errors.New("rejected by driver")
	h.PropertyErr = map[string]error{"iso": want}

	if err := h.SetProperty("iso", 800); !errors.Is(err, want) {
		t.Errorf("SetProperty error = %v, want injected error", err)
	}
	if _, ok := h.Props["iso"]; ok {
		t.Error("rejected property must not be stored")
	}

	if err := h.SetProperty("sharpness", 30); err != nil {
		t.Fatalf("SetProperty(sharpness): %v", err)
	}
	if h.Props["sharpness"] != 30 {
		t.Errorf("sharpness = %v, want 30", h.Props["sharpness"])
	}
}

func TestMockHandle_CallsTo(t *testing.T) {
	h := NewMockHandle()
	_ = h.SetBrightness(10)
	_ = h.SetContrast(20)
	_ = h.SetBrightness(30)

	calls := h.CallsTo("SetBrightness")
	if len(calls) != 2 {
		t.Fatalf("got %d SetBrightness calls, want 2", len(calls))
	}
	if calls[0].Args[0] != 10 || calls[1].Args[0] != 30 {
		t.Errorf("call args = %v, want [10] then [30]", calls)
	}
}

func TestMockHandle_ImplementsHandle(t *testing.T) {
	var _ Handle = NewMockHandle() // compile-time check
}
