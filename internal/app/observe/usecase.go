package observe

import (
	"context"
	"errors"
	"strings"
	"time"

	"craftvival/internal/app/ports"
	"craftvival/internal/app/stateview"
	"craftvival/internal/domain/survival"
)

var ErrInvalidRequest = errors.New("invalid observe request")

type UseCase struct {
	StateRepo ports.PlayerStateRepository
	Book      *survival.Book

	InventorySize int
	StackLimit    int

	Now func() time.Time
}

// Execute never creates a player. An unknown id observes the empty
// inventory it would start with.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		return Response{}, ErrInvalidRequest
	}
	known := true
	state, err := u.StateRepo.GetByPlayerID(ctx, playerID)
	if errors.Is(err, ports.ErrNotFound) {
		state = survival.NewPlayerState(playerID, u.InventorySize, u.StackLimit)
		known = false
	} else if err != nil {
		return Response{}, err
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return Response{
		View:       stateview.Project(state, u.Book),
		Known:      known,
		ObservedAt: nowFn(),
	}, nil
}
