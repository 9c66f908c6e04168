package effort

import (
	"fmt"
	"time"

	"github.com/effortwise/gearbox/pkg/models"
)

// Store is the persistence port for controller state. Load returns a
// fresh default state when nothing has been persisted yet; it never
// returns a nil state alongside a nil error.
type Store interface {
	Load() (*models.ControllerState, error)
	Save(*models.ControllerState) error
}

// Options configures a Controller.
type Options struct {
	// Store persists controller state. Required.
	Store Store
	// Sink receives telemetry events. Optional; nil disables emission.
	Sink EventSink
	// Logger receives debug lines. Optional; nil disables logging.
	Logger *DebugLogger
	// Params holds the cost-model knobs. Zero value means defaults.
	Params Params
}

// Controller owns one task's effort state and mediates every change to
// it. It is not safe for concurrent use; callers serialize access per
// task context.
type Controller struct {
	store  Store
	sink   EventSink
	logger *DebugLogger
	params Params
	state  *models.ControllerState
}

// New creates a Controller and loads its state from the store.
func New(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("effort: store is required")
	}

	params := opts.Params
	if params.MaxCostPerTask == 0 {
		params.MaxCostPerTask = DefaultMaxCostPerTask
	}
	if params.BaseCostPer1K == nil {
		params.BaseCostPer1K = DefaultParams().BaseCostPer1K
	}

	state, err := opts.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load controller state: %w", err)
	}
	if state == nil {
		state = models.NewControllerState()
	}
	if state.NodeStates == nil {
		state.NodeStates = make(map[models.Role]models.EffortProfile)
	}

	return &Controller{
		store:  opts.Store,
		sink:   opts.Sink,
		logger: opts.Logger,
		params: params,
		state:  state,
	}, nil
}

// State returns a deep copy of the current controller state.
func (c *Controller) State() *models.ControllerState {
	return c.state.Clone()
}

// Params returns the cost parameters the controller runs with.
func (c *Controller) Params() Params {
	return c.params
}

// NodeEffort returns the current effort profile for a role, with false
// when the role is unknown or has not been seeded yet.
func (c *Controller) NodeEffort(role models.Role) (models.EffortProfile, bool) {
	profile, ok := c.state.NodeStates[role]
	return profile, ok
}

// Reset clears the controller back to a fresh state and persists it.
func (c *Controller) Reset() error {
	c.state = models.NewControllerState()
	if err := c.persist(); err != nil {
		return err
	}
	c.logger.Log("RESET effort state cleared")
	return nil
}

// persist saves the current state through the store.
func (c *Controller) persist() error {
	if err := c.store.Save(c.state); err != nil {
		return fmt.Errorf("save controller state: %w", err)
	}
	return nil
}

// emit sends a telemetry event to the sink, if one is configured.
// Emission is best-effort and never affects controller results.
func (c *Controller) emit(eventType EventType, role models.Role, message string, details map[string]any) {
	if c.sink == nil {
		return
	}
	c.sink.Emit(Event{
		Type:      eventType,
		TaskID:    c.state.TaskID,
		Role:      role,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// record appends an audit entry to the state's effort history.
func (c *Controller) record(change models.EffortChange) {
	change.Timestamp = time.Now()
	c.state.EffortHistory = append(c.state.EffortHistory, change)
}
