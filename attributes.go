package tess

// EndpointID identifies an endpoint of a path event stream. Endpoints are
// numbered from zero in stream order: the point of every Begin event and
// the To point of every segment event each get the next ID. For a Path
// this is one ID per MoveTo, LineTo, QuadTo and CubicTo element, plus one
// for the implicit start of a contour that follows a Close without a
// MoveTo.
type EndpointID uint32

// VertexSource tells where on the input path a vertex comes from: the
// point at T on the segment from endpoint From to endpoint To. T is the
// fraction of the flattened length of the segment, in [0, 1). A vertex at
// an endpoint has From == To and T == 0.
type VertexSource struct {
	From, To EndpointID
	T        float64
}

// EndpointSource returns the source of a vertex at endpoint id.
func EndpointSource(id EndpointID) VertexSource {
	return VertexSource{From: id, To: id}
}

// IsEndpoint reports whether the vertex lies on an endpoint.
func (s VertexSource) IsEndpoint() bool {
	return s.From == s.To
}

// Attributes stores a fixed number of custom values per endpoint, such as
// colors or line widths, in endpoint order. Values of vertices between
// endpoints are interpolated from their VertexSource.
type Attributes struct {
	stride int
	values []float64
}

// NewAttributes returns an empty store with stride values per endpoint.
func NewAttributes(stride int) *Attributes {
	return &Attributes{stride: max(stride, 0)}
}

// Stride returns the number of values per endpoint.
func (a *Attributes) Stride() int {
	return a.stride
}

// Len returns the number of endpoints stored.
func (a *Attributes) Len() int {
	if a.stride == 0 {
		return 0
	}
	return len(a.values) / a.stride
}

// Add stores the values of the next endpoint and returns its ID. Missing
// values are zero and extra values are dropped.
func (a *Attributes) Add(values ...float64) EndpointID {
	id := EndpointID(a.Len())
	n := min(len(values), a.stride)
	a.values = append(a.values, values[:n]...)
	for range a.stride - n {
		a.values = append(a.values, 0)
	}
	return id
}

// Get returns the values of endpoint id, or nil if it is not stored. The
// slice aliases the store.
func (a *Attributes) Get(id EndpointID) []float64 {
	if int(id) >= a.Len() {
		return nil
	}
	i := int(id) * a.stride
	return a.values[i : i+a.stride : i+a.stride]
}

// Interpolate appends the values at src to dst and returns the extended
// slice. Values are interpolated linearly between the two endpoints of
// src. It reports false, leaving dst unchanged, if an endpoint is not
// stored.
func (a *Attributes) Interpolate(dst []float64, src VertexSource) ([]float64, bool) {
	from, to := a.Get(src.From), a.Get(src.To)
	if from == nil || to == nil {
		return dst, false
	}
	for k := range from {
		dst = append(dst, from[k]+src.T*(to[k]-from[k]))
	}
	return dst, true
}

// value returns the value at index k of the attributes at src.
func (a *Attributes) value(src VertexSource, k int) (float64, bool) {
	from, to := a.Get(src.From), a.Get(src.To)
	if from == nil || to == nil {
		return 0, false
	}
	return from[k] + src.T*(to[k]-from[k]), true
}

// pointSource records where a flattened point lies on its segment. A
// segment from endpoint from to endpoint to yields points with t in
// (0, 1]. The first point of a contour has from == to and t == 0.
type pointSource struct {
	from, to EndpointID
	t        float64
}

// endpoint returns the endpoint the point lies on. It is only meaningful
// for the first and last point of a segment.
func (p pointSource) endpoint() EndpointID {
	if p.t >= 1 {
		return p.to
	}
	return p.from
}

func (p pointSource) vertexSource() VertexSource {
	if p.t <= 0 || p.from == p.to {
		return EndpointSource(p.from)
	}
	if p.t >= 1 {
		return EndpointSource(p.to)
	}
	return VertexSource{From: p.from, To: p.to, T: p.t}
}

// edgeSource returns the source of the point at fraction u of the edge
// from point k to the next point of a contour with sources srcs. The edge
// after the last point closes the contour.
func edgeSource(srcs []pointSource, k int, u float64) VertexSource {
	if u <= 0 {
		return srcs[k].vertexSource()
	}
	var next pointSource
	if k+1 < len(srcs) {
		next = srcs[k+1]
	} else {
		next = pointSource{from: srcs[k].endpoint(), to: srcs[0].from, t: 1}
	}
	start := 0.0
	if cur := srcs[k]; cur.from == next.from && cur.to == next.to && cur.t < 1 {
		start = cur.t
	}
	return pointSource{from: next.from, to: next.to, t: start + u*(next.t-start)}.vertexSource()
}
