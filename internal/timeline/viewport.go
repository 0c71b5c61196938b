package timeline

// Viewport owns the scroll state of the event grid (the "master" surface) and
// pushes every offset change to follower surfaces: the date ruler follows the
// horizontal axis, the lane-label column follows the vertical axis.
//
// Propagation is strictly one-directional (master → followers) and happens in
// the same call that moves the master, so followers can never lag a paint or
// feed changes back. Followers are plain callbacks; when the rendering
// surfaces are recreated (e.g. a data reload changes layout dimensions) the
// caller detaches and re-attaches them.
type Viewport struct {
	width  int // visible size
	height int

	contentWidth  int // scrollable extent
	contentHeight int

	x int // master offsets, always clamped to [0, content-visible]
	y int

	hFollowers []func(x int)
	vFollowers []func(y int)
}

func NewViewport() *Viewport { return &Viewport{} }

func (v *Viewport) X() int      { return v.x }
func (v *Viewport) Y() int      { return v.y }
func (v *Viewport) Width() int  { return v.width }
func (v *Viewport) Height() int { return v.height }

// SetSize records the visible size of the master surface and re-clamps the
// current offsets against it.
func (v *Viewport) SetSize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
	v.ScrollTo(v.x, v.y)
}

// SetContentSize records the scrollable extent and re-clamps.
func (v *Viewport) SetContentSize(width, height int) {
	v.contentWidth = max(width, 0)
	v.contentHeight = max(height, 0)
	v.ScrollTo(v.x, v.y)
}

// AttachHorizontalFollower registers a follower of the horizontal axis and
// immediately synchronizes it with the current offset.
func (v *Viewport) AttachHorizontalFollower(f func(x int)) {
	v.hFollowers = append(v.hFollowers, f)
	f(v.x)
}

// AttachVerticalFollower registers a follower of the vertical axis.
func (v *Viewport) AttachVerticalFollower(f func(y int)) {
	v.vFollowers = append(v.vFollowers, f)
	f(v.y)
}

// DetachFollowers drops all followers. Call before re-attaching when the
// underlying surfaces have been rebuilt.
func (v *Viewport) DetachFollowers() {
	v.hFollowers = nil
	v.vFollowers = nil
}

// ScrollTo moves the master to an absolute offset, clamped to the content,
// and propagates to followers.
func (v *Viewport) ScrollTo(x, y int) {
	v.x = clampOffset(x, v.contentWidth, v.width)
	v.y = clampOffset(y, v.contentHeight, v.height)
	for _, f := range v.hFollowers {
		f(v.x)
	}
	for _, f := range v.vFollowers {
		f(v.y)
	}
}

// ScrollBy moves the master by a relative amount.
func (v *Viewport) ScrollBy(dx, dy int) { v.ScrollTo(v.x+dx, v.y+dy) }

// PageLeft scrolls one viewport width toward the domain start.
func (v *Viewport) PageLeft() { v.ScrollBy(-v.width, 0) }

// PageRight scrolls one viewport width toward the domain end.
func (v *Viewport) PageRight() { v.ScrollBy(v.width, 0) }

// CenterOn horizontally centers the given content position in the viewport,
// clamped so the offset never goes negative or past the content edge. The
// position is in whatever unit the content size was declared in.
func (v *Viewport) CenterOn(pos float64) {
	v.ScrollTo(int(pos)-v.width/2, v.y)
}

func clampOffset(off, content, visible int) int {
	maxOff := content - visible
	if maxOff < 0 {
		maxOff = 0
	}
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}
