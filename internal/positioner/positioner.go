// Package positioner computes document coordinates for the floating calendar panel.
package positioner

import (
	"sync"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// FixedGap is the vertical offset between the trigger and the panel, in pixels
const FixedGap = 4.0

// Rect is a trigger element's bounding box relative to the viewport
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
}

// Scroll holds the viewport scroll offsets
type Scroll struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Compute places the panel directly below the trigger in document coordinates.
// The result does not change on scroll, the panel follows the trigger with the document.
func Compute(trigger Rect, scroll Scroll) domain.AnchorPosition {
	return domain.AnchorPosition{
		Top:   trigger.Bottom + scroll.Y + FixedGap,
		Left:  trigger.Left + scroll.X,
		Width: trigger.Width,
	}
}

// Positioner tracks the panel position across open, resize and close.
// Resize events may arrive from any goroutine; the last one wins.
type Positioner struct {
	mu       sync.Mutex
	open     bool
	position domain.AnchorPosition
}

// New creates a closed Positioner
func New() *Positioner {
	return &Positioner{}
}

// Open recomputes the position immediately before showing the panel
func (p *Positioner) Open(trigger Rect, scroll Scroll) domain.AnchorPosition {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = true
	p.position = Compute(trigger, scroll)
	return p.position
}

// Resize recomputes the position while open. It reports false and does nothing when closed.
func (p *Positioner) Resize(trigger Rect, scroll Scroll) (domain.AnchorPosition, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return domain.AnchorPosition{}, false
	}
	p.position = Compute(trigger, scroll)
	return p.position, true
}

func (p *Positioner) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = false
}

// Position returns the last computed position and whether the panel is open
func (p *Positioner) Position() (domain.AnchorPosition, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.position, p.open
}
