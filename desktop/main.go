// Desktop client for the Micattix server. It talks to the REST API for
// session management and moves, and subscribes to the websocket feed for
// live state updates, falling back to polling when the socket drops.
//
// Run the server first (micattix server), then:
//
//	go run .
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize     = 80
	margin       = 50
	screenWidth  = 800
	screenHeight = 760

	baseURL = "http://localhost:8080"
	wsHost  = "localhost:8080"

	pollInterval        = 500 * time.Millisecond
	sessionListInterval = 2 * time.Second
)

// Screen identifies which view the client is showing.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenGame
)

// Wire types mirroring the server's JSON. The desktop module is separate
// from the server, so the shapes are duplicated here.

type Piece struct {
	Kind  string `json:"kind"`
	Value int    `json:"value,omitempty"`
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type State struct {
	Grid          [][]Piece      `json:"grid"`
	Cross         Coord          `json:"cross"`
	Round         int            `json:"round"`
	CurrentPlayer string         `json:"current_player"`
	Players       []string       `json:"players"`
	RoundOver     bool           `json:"round_over"`
	RoundScores   map[string]int `json:"round_scores"`
	Totals        map[string]int `json:"totals"`
}

type SessionInfo struct {
	ID    string `json:"id"`
	Size  string `json:"size"`
	Mode  string `json:"mode"`
	State *State `json:"state"`
}

type Event struct {
	Type   string         `json:"type"`
	Round  int            `json:"round,omitempty"`
	Player string         `json:"player,omitempty"`
	Target Coord          `json:"target,omitempty"`
	Piece  Piece          `json:"piece,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Winner *string        `json:"winner,omitempty"`
	Scores map[string]int `json:"scores,omitempty"`
}

type WSMessage struct {
	SessionID string `json:"session_id"`
	Event     *Event `json:"event,omitempty"`
	State     *State `json:"state,omitempty"`
}

type moveResult struct {
	Success bool    `json:"success"`
	Events  []Event `json:"events"`
	State   *State  `json:"state"`
}

type sessionList struct {
	Count    int           `json:"count"`
	Sessions []SessionInfo `json:"sessions"`
}

type validMovesResponse struct {
	Count int     `json:"count"`
	Moves []Coord `json:"moves"`
}

// Game is the ebiten application state. All fields touched from the
// websocket goroutine are guarded by mu.
type Game struct {
	mu sync.RWMutex

	screen   Screen
	sessions []SessionInfo
	selected int
	lastList time.Time

	sessionID  string
	state      *State
	validMoves []Coord
	wsConn     *websocket.Conn
	lastPoll   time.Time

	selectedCell *Coord
	message      string
	messageTimer float64
}

func NewGame() *Game {
	return &Game{screen: ScreenWelcome}
}

// --- HTTP plumbing ---

func apiGet(path string, out interface{}) error {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiPost(path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := http.Post(baseURL+path, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
		return fmt.Errorf("%s", e.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}

// --- Session lifecycle ---

func (g *Game) refreshSessionList() {
	var list sessionList
	if err := apiGet("/api/sessions", &list); err != nil {
		g.setMessage("Cannot reach server: "+err.Error(), 2)
		return
	}
	sort.Slice(list.Sessions, func(i, j int) bool {
		return list.Sessions[i].ID < list.Sessions[j].ID
	})
	g.mu.Lock()
	g.sessions = list.Sessions
	if g.selected >= len(g.sessions) {
		g.selected = 0
	}
	g.mu.Unlock()
}

func (g *Game) createSession(size, mode string) {
	var info SessionInfo
	if err := apiPost("/api/sessions", map[string]string{"size": size, "mode": mode}, &info); err != nil {
		g.setMessage("Create failed: "+err.Error(), 3)
		return
	}
	g.joinSession(info.ID)
}

func (g *Game) joinSession(id string) {
	var info SessionInfo
	if err := apiGet("/api/sessions/"+id, &info); err != nil {
		g.setMessage("Join failed: "+err.Error(), 3)
		return
	}

	g.mu.Lock()
	g.sessionID = info.ID
	g.state = info.State
	g.screen = ScreenGame
	g.selectedCell = nil
	g.mu.Unlock()

	g.refreshValidMoves()
	go g.listenWebSocket(id)
	g.setMessage("Joined session "+shortID(id), 2)
}

func (g *Game) leaveSession() {
	g.mu.Lock()
	if g.wsConn != nil {
		g.wsConn.Close()
		g.wsConn = nil
	}
	g.sessionID = ""
	g.state = nil
	g.validMoves = nil
	g.screen = ScreenWelcome
	g.mu.Unlock()
	g.refreshSessionList()
}

// --- State updates ---

func (g *Game) refreshState() {
	g.mu.RLock()
	id := g.sessionID
	g.mu.RUnlock()
	if id == "" {
		return
	}

	var state State
	if err := apiGet("/api/sessions/"+id+"/state", &state); err != nil {
		return
	}
	g.mu.Lock()
	g.state = &state
	g.mu.Unlock()
	g.refreshValidMoves()
}

func (g *Game) refreshValidMoves() {
	g.mu.RLock()
	id := g.sessionID
	g.mu.RUnlock()
	if id == "" {
		return
	}

	var moves validMovesResponse
	if err := apiGet("/api/sessions/"+id+"/valid-moves", &moves); err != nil {
		return
	}
	g.mu.Lock()
	g.validMoves = moves.Moves
	g.mu.Unlock()
}

// listenWebSocket subscribes to the live feed for one session. When the
// connection drops the Update loop falls back to polling.
func (g *Game) listenWebSocket(id string) {
	u := url.URL{Scheme: "ws", Host: wsHost, Path: "/ws", RawQuery: "session=" + url.QueryEscape(id)}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Printf("websocket unavailable, polling instead: %v", err)
		return
	}

	g.mu.Lock()
	g.wsConn = conn
	g.mu.Unlock()

	defer func() {
		conn.Close()
		g.mu.Lock()
		if g.wsConn == conn {
			g.wsConn = nil
		}
		g.mu.Unlock()
	}()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		g.mu.Lock()
		stale := g.sessionID != msg.SessionID
		if !stale {
			if msg.State != nil {
				g.state = msg.State
			}
			if msg.Event != nil {
				g.applyEvent(*msg.Event)
			}
		}
		g.mu.Unlock()

		if stale {
			return
		}
		g.refreshValidMoves()
	}
}

// applyEvent turns a game event into a status line. Callers hold mu.
func (g *Game) applyEvent(ev Event) {
	switch ev.Type {
	case "game_started":
		g.message, g.messageTimer = "Game started!", 3
	case "round_started":
		g.message, g.messageTimer = fmt.Sprintf("Round %d started!", ev.Round), 3
	case "move_made":
		g.message = fmt.Sprintf("%s moved to (%d,%d) and got %d points",
			ev.Player, ev.Target.Row, ev.Target.Col, ev.Piece.Value)
		g.messageTimer = 2
	case "invalid_move":
		g.message, g.messageTimer = "Invalid move: "+ev.Reason, 2
	case "round_ended":
		if ev.Winner != nil {
			g.message = "Round ended! Winner: " + *ev.Winner
		} else {
			g.message = "Round ended in a draw!"
		}
		g.messageTimer = 5
	case "game_ended":
		if ev.Winner != nil {
			g.message = "Game ended! Overall winner: " + *ev.Winner
		} else {
			g.message = "Game ended in a draw!"
		}
		g.messageTimer = 10
	}
}

func (g *Game) setMessage(msg string, seconds float64) {
	g.mu.Lock()
	g.message, g.messageTimer = msg, seconds
	g.mu.Unlock()
}

// --- Player actions ---

func (g *Game) handleClick(x, y int) {
	g.mu.RLock()
	state := g.state
	moves := g.validMoves
	id := g.sessionID
	g.mu.RUnlock()
	if state == nil {
		return
	}

	if x < margin || y < margin {
		return
	}
	rows := len(state.Grid)
	cols := 0
	if rows > 0 {
		cols = len(state.Grid[0])
	}
	col := (x - margin) / cellSize
	row := (y - margin) / cellSize
	if row >= rows || col >= cols {
		return
	}

	target := Coord{Row: row, Col: col}
	for _, m := range moves {
		if m == target {
			g.postMove(id, target)
			return
		}
	}

	g.mu.Lock()
	g.selectedCell = &target
	g.message, g.messageTimer = "Invalid move! Select a highlighted cell.", 2
	g.mu.Unlock()
}

func (g *Game) postMove(id string, target Coord) {
	var res moveResult
	if err := apiPost("/api/sessions/"+id+"/move", target, &res); err != nil {
		g.setMessage("Move failed: "+err.Error(), 3)
		return
	}

	g.mu.Lock()
	g.selectedCell = nil
	if res.State != nil {
		g.state = res.State
	}
	wsActive := g.wsConn != nil
	if !wsActive {
		// Without the live feed the events arrive only in this response.
		for _, ev := range res.Events {
			g.applyEvent(ev)
		}
	}
	g.mu.Unlock()
	g.refreshValidMoves()
}

func (g *Game) startNextRound() {
	g.mu.RLock()
	id := g.sessionID
	state := g.state
	wsActive := g.wsConn != nil
	g.mu.RUnlock()
	if state == nil {
		return
	}
	if !state.RoundOver {
		g.setMessage("Cannot start new round until current round is finished!", 2)
		return
	}

	var res struct {
		Round  int     `json:"round"`
		Events []Event `json:"events"`
		State  *State  `json:"state"`
	}
	if err := apiPost("/api/sessions/"+id+"/next-round", nil, &res); err != nil {
		g.setMessage("Next round failed: "+err.Error(), 3)
		return
	}
	g.mu.Lock()
	if res.State != nil {
		g.state = res.State
	}
	if !wsActive {
		for _, ev := range res.Events {
			g.applyEvent(ev)
		}
	}
	g.mu.Unlock()
	g.refreshValidMoves()
}

func (g *Game) endGame() {
	g.mu.RLock()
	id := g.sessionID
	g.mu.RUnlock()
	if id == "" {
		return
	}
	if err := apiPost("/api/sessions/"+id+"/end", nil, nil); err != nil {
		log.Printf("end game: %v", err)
	}
}

// --- ebiten.Game ---

func (g *Game) Update() error {
	const dt = 1.0 / 60.0

	g.mu.Lock()
	if g.messageTimer > 0 {
		g.messageTimer -= dt
		if g.messageTimer <= 0 {
			g.message = ""
		}
	}
	screen := g.screen
	g.mu.Unlock()

	switch screen {
	case ScreenWelcome:
		g.updateWelcome()
	case ScreenGame:
		g.updateGame()
	}
	return nil
}

func (g *Game) updateWelcome() {
	if time.Since(g.lastList) > sessionListInterval {
		g.lastList = time.Now()
		go g.refreshSessionList()
	}

	g.mu.Lock()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && g.selected < len(g.sessions)-1 {
		g.selected++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && g.selected > 0 {
		g.selected--
	}
	var join string
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.selected < len(g.sessions) {
		join = g.sessions[g.selected].ID
	}
	g.mu.Unlock()

	if join != "" {
		g.joinSession(join)
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.createSession("small", "two")
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.createSession("large", "two")
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.createSession("small", "four")
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		g.createSession("large", "four")
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.refreshSessionList()
	}
}

func (g *Game) updateGame() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.endGame()
		g.leaveSession()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.startNextRound()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.handleClick(x, y)
	}

	// Polling fallback when the websocket is down.
	g.mu.RLock()
	wsActive := g.wsConn != nil
	g.mu.RUnlock()
	if !wsActive && time.Since(g.lastPoll) > pollInterval {
		g.lastPoll = time.Now()
		go g.refreshState()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	screen.Fill(color.White)
	switch g.screen {
	case ScreenWelcome:
		g.drawWelcome(screen)
	case ScreenGame:
		g.drawGame(screen)
	}
}

func (g *Game) drawWelcome(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "MICATTIX", margin, 30)
	ebitenutil.DebugPrintAt(screen, "1: new 4x4 game   2: new 6x6 game", margin, 60)
	ebitenutil.DebugPrintAt(screen, "3: new 4x4 four players   4: new 6x6 four players", margin, 75)
	ebitenutil.DebugPrintAt(screen, "Up/Down + Enter: join a session   R: refresh", margin, 90)

	if len(g.sessions) == 0 {
		ebitenutil.DebugPrintAt(screen, "No active sessions.", margin, 130)
	}
	for i, s := range g.sessions {
		line := fmt.Sprintf("  %s  %s, %s players, round %d", shortID(s.ID), s.Size, s.Mode, sessionRound(s))
		if i == g.selected {
			line = ">" + line[1:]
		}
		ebitenutil.DebugPrintAt(screen, line, margin, 130+i*15)
	}

	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, margin, screenHeight-40)
	}
}

func sessionRound(s SessionInfo) int {
	if s.State == nil {
		return 0
	}
	return s.State.Round
}

func (g *Game) drawGame(screen *ebiten.Image) {
	state := g.state
	if state == nil {
		ebitenutil.DebugPrintAt(screen, "Waiting for state...", margin, margin)
		return
	}

	rows := len(state.Grid)
	cols := 0
	if rows > 0 {
		cols = len(state.Grid[0])
	}

	// Header
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Current Player: %s        Round: %d", state.CurrentPlayer, state.Round),
		margin, 20)

	// Board background
	ebitenutil.DrawRect(screen, margin, margin,
		float64(cols*cellSize), float64(rows*cellSize), color.RGBA{230, 230, 230, 255})

	// Valid targets for the player to move
	for _, m := range g.validMoves {
		ebitenutil.DrawRect(screen,
			float64(margin+m.Col*cellSize), float64(margin+m.Row*cellSize),
			cellSize, cellSize, color.RGBA{0, 255, 0, 100})
	}

	// Last clicked cell, when it was not a legal target
	if g.selectedCell != nil {
		ebitenutil.DrawRect(screen,
			float64(margin+g.selectedCell.Col*cellSize), float64(margin+g.selectedCell.Row*cellSize),
			cellSize, cellSize, color.RGBA{255, 255, 0, 100})
	}

	// Grid lines and cell contents
	for r := 0; r <= rows; r++ {
		y := float64(margin + r*cellSize)
		ebitenutil.DrawLine(screen, margin, y, float64(margin+cols*cellSize), y, color.Black)
	}
	for c := 0; c <= cols; c++ {
		x := float64(margin + c*cellSize)
		ebitenutil.DrawLine(screen, x, margin, x, float64(margin+rows*cellSize), color.Black)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := margin + c*cellSize + cellSize/2 - 8
			y := margin + r*cellSize + cellSize/2 - 8
			switch piece := state.Grid[r][c]; piece.Kind {
			case "number":
				ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", piece.Value), x, y)
			case "cross":
				ebitenutil.DebugPrintAt(screen, "X", x, y)
			}
		}
	}

	// Scores, totals, status and help below the board
	base := margin + rows*cellSize
	ebitenutil.DebugPrintAt(screen, "Scores - "+scoreLine(state.Players, state.RoundScores), margin, base+20)
	ebitenutil.DebugPrintAt(screen, "Totals - "+scoreLine(state.Players, state.Totals), margin, base+40)

	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, margin, base+70)
	}
	if state.RoundOver {
		ebitenutil.DebugPrintAt(screen, "Round over. Press N for the next round.", margin, base+90)
	}
	ebitenutil.DebugPrintAt(screen,
		"Click on highlighted cells to move. ESC to quit. N for new round.",
		margin, base+120)
}

// scoreLine renders per-player scores in seat order.
func scoreLine(players []string, scores map[string]int) string {
	out := ""
	for i, p := range players {
		if i > 0 {
			out += " | "
		}
		out += fmt.Sprintf("%s: %d", p, scores[p])
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Micattix")

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
