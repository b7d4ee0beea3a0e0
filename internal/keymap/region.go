package keymap

// Region is an open rectangle in relative screen coordinates extending to
// the bottom-right corner of the overlay.
type Region struct {
	MinX float64
	MinY float64
}

// Contains reports whether (x, y) lies strictly inside the region. Points
// on the boundary are outside.
func (r Region) Contains(x, y float64) bool {
	return x > r.MinX && y > r.MinY
}

// ExclusionRegion is the skill-card area purged before insertion.
// The coordinates belong to one game's layout and stay literal.
var ExclusionRegion = Region{MinX: 0.67, MinY: 0.79}
