package survival

import "time"

type Hands struct {
	Tool ItemType `json:"tool"`
}

func (h Hands) Empty() bool {
	return h.Tool.IsNone()
}

type PlayerState struct {
	PlayerID  string    `json:"player_id"`
	Inventory Inventory `json:"inventory"`
	Hands     Hands     `json:"hands"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPlayerState(playerID string, size, stackLimit int) PlayerState {
	return PlayerState{
		PlayerID:  playerID,
		Inventory: NewInventory(size, stackLimit),
	}
}

func (s PlayerState) Clone() PlayerState {
	next := s
	next.Inventory = s.Inventory.Clone()
	return next
}
