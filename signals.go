package itemadapter

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Signals for registry and adaptation events.
var (
	SignalStrategyRegistered = capitan.NewSignal("itemadapter.strategy.registered", "Strategy added to a registry")
	SignalStrategyRemoved    = capitan.NewSignal("itemadapter.strategy.removed", "Strategy removed from a registry")
	SignalRegistryReset      = capitan.NewSignal("itemadapter.registry.reset", "Registry restored to its default order")
	SignalAdaptFailed        = capitan.NewSignal("itemadapter.adapt.failed", "No strategy accepted a value")
)

// Keys for typed event data.
var (
	KeyStrategy = capitan.NewStringKey("strategy")
	KeyPosition = capitan.NewStringKey("position")
	KeyTypeName = capitan.NewStringKey("type_name")
	KeyCount    = capitan.NewIntKey("count")
	KeyError    = capitan.NewErrorKey("error")
)

// Registry positions reported with KeyPosition.
const (
	positionFront = "front"
	positionBack  = "back"
)

// emitStrategyRegistered emits an event when a strategy is pushed onto a registry.
func emitStrategyRegistered(ctx context.Context, strategy, position string, count int) {
	capitan.Emit(ctx, SignalStrategyRegistered,
		KeyStrategy.Field(strategy),
		KeyPosition.Field(position),
		KeyCount.Field(count),
	)
}

// emitStrategyRemoved emits an event when a strategy leaves a registry.
func emitStrategyRemoved(ctx context.Context, strategy, position string, count int) {
	capitan.Emit(ctx, SignalStrategyRemoved,
		KeyStrategy.Field(strategy),
		KeyPosition.Field(position),
		KeyCount.Field(count),
	)
}

// emitRegistryReset emits an event when a registry is restored to defaults.
func emitRegistryReset(ctx context.Context, count int) {
	capitan.Emit(ctx, SignalRegistryReset,
		KeyCount.Field(count),
	)
}

// emitAdaptFailed reports a value no strategy accepted. The error is still
// returned to the caller.
func emitAdaptFailed(ctx context.Context, typeName string, err error) {
	capitan.Error(ctx, SignalAdaptFailed,
		KeyTypeName.Field(typeName),
		KeyError.Field(err),
	)
}
