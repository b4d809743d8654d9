package domain

// AnchorPosition is where a floating calendar panel is drawn, in document coordinates
type AnchorPosition struct {
	Top   float64
	Left  float64
	Width float64
}
