package scene

import "github.com/go-gl/mathgl/mgl32"

// ExplosionEvent is spec.md §6's explosion event: the renderer maps these
// to particle bursts.
type ExplosionEvent struct {
	Position   mgl32.Vec3
	EmberCount int
}

func (c *Coordinator) pushEmber(pos mgl32.Vec3, destroyedCount int) {
	count := int(float32(destroyedCount) * EmberFromDestroyedScale)
	if count < 1 {
		count = 1
	}
	c.explosionEvents = append(c.explosionEvents, ExplosionEvent{Position: pos, EmberCount: count})
}

// DrainExplosionEvents returns and clears the accumulated explosion-event
// stream.
func (c *Coordinator) DrainExplosionEvents() []ExplosionEvent {
	if len(c.explosionEvents) == 0 {
		return nil
	}
	out := c.explosionEvents
	c.explosionEvents = nil
	return out
}
