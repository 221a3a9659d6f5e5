package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrResetDeliverymenWeekCommandIsNotConstructed = errors.New(
	"ResetDeliverymenWeekCommand must be created via NewResetDeliverymenWeekCommand constructor",
)

// ResetDeliverymenWeekCommand closes the working week: every deliveryman's
// numberOfViewsPerWeek goes back to zero.
type ResetDeliverymenWeekCommand struct {
	guard guard.ConstructorGuard
}

func NewResetDeliverymenWeekCommand() ResetDeliverymenWeekCommand {
	return ResetDeliverymenWeekCommand{guard: guard.NewConstructorGuard()}
}

func (c ResetDeliverymenWeekCommand) Validate() error {
	return c.guard.Validate(ErrResetDeliverymenWeekCommandIsNotConstructed)
}
