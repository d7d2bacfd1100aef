package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"micattix/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Micattix",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Micattix - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the cross marker along your axis to capture numbered tiles. Horizontal
players (first, third) move the cross within its row; vertical players
(second, fourth) move it within its column. The captured tile's value is
added to your score and the cross takes its cell. The round ends once every
numbered tile has been captured; highest total wins.

AVAILABLE TOOLS:
- create_session: Create a new game session (small/large board, two/four players)
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get the current board, turn and scores
- valid_moves: List the cells the current player may capture
- move: Capture the tile at (row, col) - requires intent explanation
- next_round: Bank round scores and deal a fresh board
- end_game: Report the overall standings
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on the move tool serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional board size and player count",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"size": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"small", "large"},
					"description": "Board size: small (4x4) or large (6x6). Defaults to small.",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"two", "four"},
					"description": "Player count: two or four. Defaults to two.",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Shuffle seed for a reproducible board (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, whose turn it is, and the scores",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "valid_moves",
		Description: "List the cells the current player may capture",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleValidMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Capture the tile at (row, col) for the current player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Target row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Target column (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_round",
		Description: "Bank the round scores and deal a fresh board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleNextRound)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "Report the overall standings across all rounds",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEndGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{}
	if size, _ := args["size"].(string); size != "" {
		body["size"] = size
	}
	if mode, _ := args["mode"].(string); mode != "" {
		body["mode"] = mode
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = uint64(seed)
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s, players: %s\n\n%s",
		session.ID, session.Size, session.Mode, formatState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (%s board, %s players, created %s)\n",
			s.ID, s.Size, s.Mode, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nBoard: %s, players: %s\nCreated: %s\n\n%s",
		session.ID, session.Size, session.Mode,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.StateSnapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatState(&state)), nil
}

func (c *Client) handleValidMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Count int `json:"count"`
		Moves []struct {
			Row int `json:"row"`
			Col int `json:"col"`
		} `json:"moves"`
	}

	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/valid-moves", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No valid moves for the current player. Check game_state: the round is over only once no numbered tiles remain; then use next_round to continue or end_game to finish."), nil
	}

	result := fmt.Sprintf("Valid moves (%d):\n", response.Count)
	for _, m := range response.Moves {
		result += fmt.Sprintf("- (%d,%d)\n", m.Row, m.Col)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row, _ := args["row"].(float64)
	col, _ := args["col"].(float64)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]int{
		"row": int(row),
		"col": int(col),
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleNextRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.RoundResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/next-round", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Round %d started\n\n%s", result.Round, formatState(result.State))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var summary service.GameSummary
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/end", sessionID), nil, &summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Final standings:\n")
	for player, total := range summary.Totals {
		b.WriteString(fmt.Sprintf("- %s: %d\n", player, total))
	}
	if summary.Draw {
		b.WriteString("\nResult: draw")
	} else if summary.Winner != nil {
		b.WriteString(fmt.Sprintf("\nWinner: %s", summary.Winner))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Micattix - Complete Instructions

GAME OBJECTIVE:
Capture numbered tiles by sliding the cross marker. The player with the
highest total across all rounds wins.

GAME MECHANICS:
- The board is a grid of numbered tiles with a single cross marker.
- Horizontal players (first, third) may capture any tile in the cross's row.
- Vertical players (second, fourth) may capture any tile in the cross's column.
- Capturing a tile adds its value to your round score and moves the cross to
  that cell, leaving the old cell empty.
- Large boards contain negative tiles; capturing one lowers your score.
- A round ends when no numbered tile remains on the board. A player whose
  axis is empty has no legal move even while off-axis tiles remain.
- next_round banks round scores into cumulative totals and deals a fresh
  board; the starting player rotates each round.
- end_game compares cumulative totals. The strictly highest total wins; a
  tie at the top is a draw.

STRATEGY HINTS:
- Every capture repositions the cross for the opponent; a high-value grab
  that leaves a higher-value tile on the opponent's axis is usually a loss.
- On large boards, steering the cross toward negative tiles can force the
  opponent into a bad capture.
- Watch for moves that leave no tile on your opponent's axis and strand them.

TOOL USAGE:
1. create_session, then game_state to see the board.
2. valid_moves lists the cells you may take; move captures one.
3. When the board is cleared, use next_round or end_game.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously.
- Sessions maintain independent boards, turns and scores.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatState(state *service.StateSnapshot) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Round %d | Turn: %s | Cross at (%d,%d)\n\n",
		state.Round, state.CurrentPlayer, state.Cross.Row, state.Cross.Col))

	for _, row := range state.Grid {
		for _, piece := range row {
			b.WriteString(piece.String())
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nRound scores:\n")
	for _, player := range state.Players {
		b.WriteString(fmt.Sprintf("- %s: %d (total %d)\n",
			player, state.RoundScores[player.String()], state.Totals[player.String()]))
	}

	if state.RoundOver {
		b.WriteString("\nRound over: no numbered tiles remain.")
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("Move accepted\n")
	} else {
		b.WriteString("Move rejected\n")
	}

	for _, event := range result.Events {
		switch event.Type {
		case "move_made":
			b.WriteString(fmt.Sprintf("%s captured %s at (%d,%d)\n",
				event.Player, strings.TrimSpace(event.Piece.String()), event.Target.Row, event.Target.Col))
		case "invalid_move":
			b.WriteString(fmt.Sprintf("Rejected: %s\n", event.Reason))
		case "round_ended":
			if event.Winner != nil {
				b.WriteString(fmt.Sprintf("Round ended, winner: %s\n", event.Winner))
			} else {
				b.WriteString("Round ended in a draw\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(formatState(result.State))
	return b.String()
}
