package engine

import "testing"

func TestPlayerAxis(t *testing.T) {
	if First.Axis() != Horizontal || Third.Axis() != Horizontal {
		t.Error("First and Third should move horizontally")
	}
	if Second.Axis() != Vertical || Fourth.Axis() != Vertical {
		t.Error("Second and Fourth should move vertically")
	}
}

func TestGameModePlayers(t *testing.T) {
	two := TwoPlayers.Players()
	if len(two) != 2 || two[0] != First || two[1] != Second {
		t.Errorf("TwoPlayers.Players() = %v", two)
	}

	four := FourPlayers.Players()
	if len(four) != 4 {
		t.Fatalf("FourPlayers.Players() = %v", four)
	}
	for i, want := range []Player{First, Second, Third, Fourth} {
		if four[i] != want {
			t.Errorf("four[%d] = %v, want %v", i, four[i], want)
		}
	}
}

func TestNextPlayer(t *testing.T) {
	two := TwoPlayers.Players()
	if got := NextPlayer(two, First); got != Second {
		t.Errorf("NextPlayer(two, First) = %v", got)
	}
	if got := NextPlayer(two, Second); got != First {
		t.Errorf("NextPlayer(two, Second) = %v", got)
	}

	four := FourPlayers.Players()
	order := []Player{First, Second, Third, Fourth, First}
	for i := 0; i < 4; i++ {
		if got := NextPlayer(four, order[i]); got != order[i+1] {
			t.Errorf("NextPlayer(four, %v) = %v, want %v", order[i], got, order[i+1])
		}
	}

	// A player outside the active list rotates back to the head.
	if got := NextPlayer(two, Third); got != First {
		t.Errorf("NextPlayer(two, Third) = %v, want First", got)
	}
}

func TestParseBoardSize(t *testing.T) {
	if size, ok := ParseBoardSize("large"); !ok || size != Large {
		t.Errorf("ParseBoardSize(large) = %v, %v", size, ok)
	}
	if size, ok := ParseBoardSize("2"); !ok || size != Large {
		t.Errorf("ParseBoardSize(2) = %v, %v", size, ok)
	}
	if size, ok := ParseBoardSize("bogus"); ok || size != Small {
		t.Errorf("ParseBoardSize(bogus) = %v, %v, want Small fallback", size, ok)
	}
}

func TestParseGameMode(t *testing.T) {
	if mode, ok := ParseGameMode("four"); !ok || mode != FourPlayers {
		t.Errorf("ParseGameMode(four) = %v, %v", mode, ok)
	}
	if mode, ok := ParseGameMode("bogus"); ok || mode != TwoPlayers {
		t.Errorf("ParseGameMode(bogus) = %v, %v, want TwoPlayers fallback", mode, ok)
	}
}

func TestPlayerJSONRoundTrip(t *testing.T) {
	data, err := Third.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"third"` {
		t.Errorf("MarshalJSON = %s", data)
	}

	var p Player
	if err := p.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if p != Third {
		t.Errorf("round trip = %v, want Third", p)
	}

	if err := p.UnmarshalJSON([]byte(`"fifth"`)); err == nil {
		t.Error("unknown player name should fail to unmarshal")
	}
}
