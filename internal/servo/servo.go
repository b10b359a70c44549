// Package servo simulates the sorting servo. There is no physical
// actuator; the controller tracks the current deflection and pushes
// updates to connected viewers over a websocket.
package servo

import (
	"sync"

	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/classify"
)

// State is the servo position broadcast to viewers.
type State struct {
	ServoAngle classify.Angle `json:"servo_angle"`
	Bin        classify.Bin   `json:"bin"`
}

// Controller holds the simulated servo position. Safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	state State
	hub   *Hub
}

// NewController starts at the Other position (0 degrees), the servo's
// rest state.
func NewController(hub *Hub) *Controller {
	return &Controller{
		state: State{ServoAngle: classify.AngleOther, Bin: classify.Other},
		hub:   hub,
	}
}

// Move rotates the simulated servo for a decision and notifies viewers.
func (c *Controller) Move(bin classify.Bin, angle classify.Angle) {
	c.mu.Lock()
	c.state = State{ServoAngle: angle, Bin: bin}
	state := c.state
	c.mu.Unlock()

	if c.hub != nil {
		c.hub.Broadcast(state)
	}
}

// State returns the current servo position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
