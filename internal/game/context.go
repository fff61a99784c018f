package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/assets"
	"github.com/Faultbox/ubiengine/internal/config"
	"github.com/Faultbox/ubiengine/internal/engine/audio"
	"github.com/Faultbox/ubiengine/internal/engine/clock"
	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game/states"
)

// Surface is the presentation surface the loop flushes once per iteration.
type Surface interface {
	Open(title string, width, height int) error
	// Update presents the frame and paces it. dt is the real delta of the
	// current iteration.
	Update(dt time.Duration) error
	Close()
}

// Context carries the shared dependencies handed to state and input
// factories. It is built once at bootstrap.
type Context struct {
	// Config is a read-only copy of the validated configuration.
	Config config.Config

	States  states.Transitions
	Clock   *clock.Clock
	Surface Surface // nil when running headless
	Inputs  *input.Registry
	Audio   *audio.Manager
	Assets  *assets.Manager
	Log     *zap.Logger
	RunID   string

	registry *Registry
}

// NewState builds a registered state by id.
func (c *Context) NewState(id string) (states.State, error) {
	return c.registry.newState(id, c)
}
