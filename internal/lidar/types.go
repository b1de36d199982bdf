package lidar

// Point is one calibrated return in a converted cloud.
//
// Coordinates are in meters in the sensor frame. T is the point's
// timestamp in nanoseconds relative to the start of its frame, clamped
// into [0, frame duration] so it can never wrap the unsigned field.
// Range carries the raw sensor range in millimeters; Ring is the firing
// row the point came from.
type Point struct {
	X, Y, Z      float32 // sensor-frame coordinates (m)
	Signal       float32 // signal intensity
	T            uint32  // nanoseconds since frame start, clamped
	Reflectivity uint16
	Ring         uint16 // firing row index
	NearIR       uint16 // ambient/near-infrared value
	Range        uint32 // raw range (mm); 0 = no return
}

// Cloud is an H×W grid of points laid out row-major by firing row.
// A Cloud is exclusively owned by the conversion call that produced it
// until handed off; it is never mutated concurrently.
type Cloud struct {
	H, W   int
	Points []Point // len H*W, index = row*W + col
}

// NewCloud allocates a zeroed H×W cloud.
func NewCloud(h, w int) *Cloud {
	return &Cloud{H: h, W: w, Points: make([]Point, h*w)}
}

// At returns the point at firing row u, column v.
func (c *Cloud) At(u, v int) Point {
	return c.Points[u*c.W+v]
}

// Set stores the point at firing row u, column v.
func (c *Cloud) Set(u, v int, p Point) {
	c.Points[u*c.W+v] = p
}

// Len returns the total number of points (always H*W).
func (c *Cloud) Len() int {
	return len(c.Points)
}

// Clone returns a deep copy of the cloud.
func (c *Cloud) Clone() *Cloud {
	out := &Cloud{H: c.H, W: c.W, Points: make([]Point, len(c.Points))}
	copy(out.Points, c.Points)
	return out
}
