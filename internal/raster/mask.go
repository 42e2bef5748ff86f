package raster

// Mask is a boolean raster with the same layout as Grid.
type Mask struct {
	Width  int
	Height int
	Data   []bool
}

// NewMask allocates a mask with every cell set to fill.
func NewMask(width, height int, fill bool) *Mask {
	m := &Mask{Width: width, Height: height, Data: make([]bool, width*height)}
	if fill {
		for i := range m.Data {
			m.Data[i] = true
		}
	}
	return m
}

// At returns the value at column x, row y.
func (m *Mask) At(x, y int) bool {
	return m.Data[y*m.Width+x]
}

// Set stores the value at column x, row y.
func (m *Mask) Set(x, y int, v bool) {
	m.Data[y*m.Width+x] = v
}

// Shape returns (rows, cols).
func (m *Mask) Shape() (int, int) {
	return m.Height, m.Width
}

// Matches reports whether the mask covers the grid cell for cell.
func (m *Mask) Matches(g *Grid) bool {
	return m.Width == g.Width && m.Height == g.Height && len(m.Data) == len(g.Data)
}

// Not returns the logical inverse.
func (m *Mask) Not() *Mask {
	out := &Mask{Width: m.Width, Height: m.Height, Data: make([]bool, len(m.Data))}
	for i, v := range m.Data {
		out.Data[i] = !v
	}
	return out
}

// Count returns the number of true cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Data {
		if v {
			n++
		}
	}
	return n
}
