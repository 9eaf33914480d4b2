package camera

// VideoResolution stores one allowed recording resolution together with
// the frame-rate range the rolling shutter can sustain at that size.
// The sensor reads out lines sequentially, so larger frames cap the
// achievable frame rate; recording outside these ranges tears frames or
// introduces gaps. Entries are built once and never mutated.
type VideoResolution struct {
	Width  int
	Height int
	MinFPS float64
	MaxFPS float64
}

// IsResolution reports whether this entry matches the given size.
func (r VideoResolution) IsResolution(width, height int) bool {
	return r.Width == width && r.Height == height
}

// ValidFrameRate reports whether fps is allowed for this resolution.
// The range is half-open: MinFPS <= fps < MaxFPS.
func (r VideoResolution) ValidFrameRate(fps float64) bool {
	return r.MinFPS <= fps && fps < r.MaxFPS
}

// AspectRatio returns the entry's width:height reduced to lowest terms.
func (r VideoResolution) AspectRatio() (int, int) {
	return AspectRatio(r.Width, r.Height)
}

// AspectRatio reduces width:height by their greatest common divisor,
// e.g. 1920x1080 becomes 16:9. Non-positive dimensions yield 0:0.
func AspectRatio(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	d := gcd(width, height)
	return width / d, height / d
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Sensor mode table for the OV5647: resolutions and the frame-rate
// range each one sustains, row for row.
var (
	allowedVideoResolutions = [][2]int{
		{2592, 1944},
		{1296, 972},
		{1296, 730},
		{640, 480},
		{640, 480},
		{1920, 1080},
	}
	allowedFrameRateRanges = [][2]float64{
		{1, 15},
		{1, 42},
		{1, 49},
		{42.1, 60},
		{60.1, 90},
		{1, 30},
	}
)

// instantiateResolutions builds the ordered resolution table from the
// two parallel static tables. Iteration starts at row 1: the full-frame
// 2592x1944 mode is left out of the selectable set.
func instantiateResolutions() []VideoResolution {
	resolutions := make([]VideoResolution, 0, len(allowedVideoResolutions)-1)
	for i := 1; i < len(allowedVideoResolutions); i++ {
		resolutions = append(resolutions, VideoResolution{
			Width:  allowedVideoResolutions[i][0],
			Height: allowedVideoResolutions[i][1],
			MinFPS: allowedFrameRateRanges[i][0],
			MaxFPS: allowedFrameRateRanges[i][1],
		})
	}
	return resolutions
}
