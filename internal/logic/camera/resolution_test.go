package camera

import "testing"

func TestInstantiateResolutions_SkipsFirstRow(t *testing.T) {
	resolutions := instantiateResolutions()

	if got, want := len(resolutions), len(allowedVideoResolutions)-1; got != want {
		t.Fatalf("got %d entries, want %d (one fewer than the static table)", got, want)
	}
	// The full-frame mode must not appear.
	for _, r := range resolutions {
		if r.IsResolution(2592, 1944) {
			t.Error("full-frame 2592x1944 mode should not be in the selectable set")
		}
	}
	// Each entry pairs with its row in the frame-rate table.
	for i, r := range resolutions {
		row := i + 1
		if r.Width != allowedVideoResolutions[row][0] || r.Height != allowedVideoResolutions[row][1] {
			t.Errorf("entry %d: %dx%d, want %dx%d", i, r.Width, r.Height,
				allowedVideoResolutions[row][0], allowedVideoResolutions[row][1])
		}
		if r.MinFPS != allowedFrameRateRanges[row][0] || r.MaxFPS != allowedFrameRateRanges[row][1] {
			t.Errorf("entry %d: range [%v,%v), want [%v,%v)", i, r.MinFPS, r.MaxFPS,
				allowedFrameRateRanges[row][0], allowedFrameRateRanges[row][1])
		}
	}
}

func TestIsResolution_ValueEquality(t *testing.T) {
	r := VideoResolution{Width: 1920, Height: 1080, MinFPS: 1, MaxFPS: 30}

	if !r.IsResolution(1920, 1080) {
		t.Error("IsResolution(1920, 1080) = false, want true")
	}
	// Computed values must match too (value equality, not identity).
	w, h := 1280+640, 1000+80
	if !r.IsResolution(w, h) {
		t.Error("IsResolution with computed 1920x1080 = false, want true")
	}
	if r.IsResolution(1920, 1088) {
		t.Error("IsResolution(1920, 1088) = true, want false")
	}
	if r.IsResolution(1080, 1920) {
		t.Error("IsResolution with swapped dimensions = true, want false")
	}
}

func TestValidFrameRate_Boundaries(t *testing.T) {
	r := VideoResolution{Width: 640, Height: 480, MinFPS: 42.1, MaxFPS: 60}

	cases := []struct {
		fps  float64
		want bool
	}{
		{42.0, false},
		{42.1, true}, // fps == min is valid
		{50, true},
		{59.999, true},
		{60, false}, // fps == max is not valid (half-open range)
		{90, false},
		{0, false},
	}
	for _, tc := range cases {
		if got := r.ValidFrameRate(tc.fps); got != tc.want {
			t.Errorf("ValidFrameRate(%v) = %v, want %v", tc.fps, got, tc.want)
		}
	}
}

func TestValidFrameRate_PerResolution(t *testing.T) {
	cam, _ := newTestCam(t)

	cases := []struct {
		width, height int
		fps           float64
		want          bool
	}{
		{1920, 1080, 25, true},
		{1920, 1080, 30, false}, // at the max bound
		{1296, 972, 1, true},    // at the min bound
		{1296, 730, 48, true},
		{1296, 730, 49, false},
		{640, 480, 45, true},  // 42.1-60 row
		{640, 480, 75, true},  // 60.1-90 row
		{640, 480, 60, false}, // between the two ranges
		{2592, 1944, 10, false},
		{800, 600, 25, false}, // not in the table at all
	}
	for _, tc := range cases {
		if got := cam.ValidFrameRate(tc.width, tc.height, tc.fps); got != tc.want {
			t.Errorf("ValidFrameRate(%dx%d, %v) = %v, want %v",
				tc.width, tc.height, tc.fps, got, tc.want)
		}
	}
}

func TestAspectRatio(t *testing.T) {
	cases := []struct {
		width, height int
		wantW, wantH  int
	}{
		{1920, 1080, 16, 9},
		{1296, 972, 4, 3},
		{640, 480, 4, 3},
		{2592, 1944, 4, 3},
		{1296, 730, 648, 365},
		{1, 1, 1, 1},
		{0, 480, 0, 0},
		{640, -1, 0, 0},
	}
	for _, tc := range cases {
		w, h := AspectRatio(tc.width, tc.height)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("AspectRatio(%d, %d) = %d:%d, want %d:%d",
				tc.width, tc.height, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestVideoResolution_AspectRatioMethod(t *testing.T) {
	r := VideoResolution{Width: 1920, Height: 1080}
	if w, h := r.AspectRatio(); w != 16 || h != 9 {
		t.Errorf("AspectRatio() = %d:%d, want 16:9", w, h)
	}
}
