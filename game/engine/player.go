package engine

import "fmt"

// Axis is the line a player may slide the cross along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Player identifies one of up to four participants. First and Third move the
// cross along its row, Second and Fourth along its column.
type Player int

const (
	First Player = iota
	Second
	Third
	Fourth
)

var playerNames = [...]string{"first", "second", "third", "fourth"}

func (p Player) String() string {
	if p < First || p > Fourth {
		return fmt.Sprintf("player(%d)", int(p))
	}
	return playerNames[p]
}

// Axis returns the movement axis assigned to the player.
func (p Player) Axis() Axis {
	if p == First || p == Third {
		return Horizontal
	}
	return Vertical
}

// MarshalJSON encodes the player as its lowercase name.
func (p Player) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a player from its lowercase name.
func (p *Player) UnmarshalJSON(data []byte) error {
	s := string(data)
	for i, name := range playerNames {
		if s == `"`+name+`"` {
			*p = Player(i)
			return nil
		}
	}
	return fmt.Errorf("unknown player %s", s)
}

// ParsePlayer converts a player name back to a Player. The second return
// value reports whether the name was recognized.
func ParsePlayer(s string) (Player, bool) {
	for i, name := range playerNames {
		if s == name {
			return Player(i), true
		}
	}
	return First, false
}

// GameMode selects how many players participate in a session.
type GameMode int

const (
	TwoPlayers GameMode = iota
	FourPlayers
)

func (m GameMode) String() string {
	if m == FourPlayers {
		return "four"
	}
	return "two"
}

// Players returns the active player list for the mode, in turn order.
func (m GameMode) Players() []Player {
	if m == FourPlayers {
		return []Player{First, Second, Third, Fourth}
	}
	return []Player{First, Second}
}

// ParseGameMode recognizes "two"/"2" and "four"/"4". The second return value
// reports whether the input was recognized; callers are expected to fall back
// to TwoPlayers when it was not.
func ParseGameMode(s string) (GameMode, bool) {
	switch s {
	case "two", "2":
		return TwoPlayers, true
	case "four", "4":
		return FourPlayers, true
	}
	return TwoPlayers, false
}

// ParseBoardSize recognizes "small"/"1" and "large"/"2". The second return
// value reports whether the input was recognized; callers are expected to
// fall back to Small when it was not.
func ParseBoardSize(s string) (BoardSize, bool) {
	switch s {
	case "small", "1":
		return Small, true
	case "large", "2":
		return Large, true
	}
	return Small, false
}

// NextPlayer returns the player whose turn follows current, rotating through
// the given turn-ordered list. A current player that is not in the list maps
// to the first entry.
func NextPlayer(players []Player, current Player) Player {
	for i, p := range players {
		if p == current {
			return players[(i+1)%len(players)]
		}
	}
	return players[0]
}
