package game

import "context"

// Application is the lifecycle contract a host drives. Only Start does
// anything; the other hooks exist for hosts that deploy applications.
type Application interface {
	Start(ctx context.Context)
	Stop()
	Init(appID string)
	TearDown()
}

var _ Application = (*Game)(nil)

// Stop is a no-op. Hosts stop a running game by cancelling Start's context.
func (g *Game) Stop() {}

// Init is a no-op deployment hook.
func (g *Game) Init(appID string) {}

// TearDown is a no-op undeployment hook.
func (g *Game) TearDown() {}
