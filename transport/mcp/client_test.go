package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"micattix/game/engine"
	"micattix/game/manager"
	"micattix/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "test-session",
		"size":  "small",
		"mode":  "two",
		"round": 1,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/x", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if err.Error() != "session not found" {
		t.Errorf("Expected API error message to pass through, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		var opts service.CreateOptions
		json.NewDecoder(r.Body).Decode(&opts)
		if opts.Size != "large" {
			t.Errorf("Expected size to be forwarded, got %q", opts.Size)
		}

		resp := service.SessionInfo{
			ID:   "test-session-123",
			Size: "large",
			Mode: "two",
			State: &service.StateSnapshot{
				Round:         1,
				CurrentPlayer: engine.First,
				Players:       []engine.Player{engine.First, engine.Second},
				RoundScores:   map[string]int{"first": 0, "second": 0},
				Totals:        map[string]int{"first": 0, "second": 0},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{"size": "large"},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_move(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/abc/move" {
			t.Errorf("Expected POST /api/sessions/abc/move, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		if body["row"] != 1 || body["col"] != 2 {
			t.Errorf("Expected row=1 col=2, got %v", body)
		}

		mover := engine.First
		resp := service.MoveResult{
			Success: true,
			Events: []manager.Event{{
				Type:   manager.EventMoveMade,
				Player: &mover,
				Target: engine.Coord{Row: 1, Col: 2},
				Piece:  engine.NumberPiece(7),
			}},
			State: &service.StateSnapshot{
				Round:         1,
				CurrentPlayer: engine.Second,
				Players:       []engine.Player{engine.First, engine.Second},
				RoundScores:   map[string]int{"first": 7, "second": 0},
				Totals:        map[string]int{"first": 0, "second": 0},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "move",
			Arguments: map[string]interface{}{
				"session_id": "abc",
				"row":        float64(1),
				"col":        float64(2),
				"intent":     "grab the seven",
			},
		},
	}

	result, err := client.handleMove(ctx, request)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(text.Text, "Move accepted") {
		t.Errorf("Expected acceptance in result, got: %s", text.Text)
	}
	if !strings.Contains(text.Text, "first captured 7 at (1,2)") {
		t.Errorf("Expected capture line in result, got: %s", text.Text)
	}
}

func TestFormatState(t *testing.T) {
	state := &service.StateSnapshot{
		Grid: [][]engine.Piece{
			{engine.NumberPiece(1), engine.CrossPiece()},
			{engine.EmptyPiece(), engine.NumberPiece(8)},
		},
		Cross:         engine.Coord{Row: 0, Col: 1},
		Round:         2,
		CurrentPlayer: engine.Second,
		Players:       []engine.Player{engine.First, engine.Second},
		RoundScores:   map[string]int{"first": 3, "second": 5},
		Totals:        map[string]int{"first": 10, "second": 8},
	}

	result := formatState(state)

	expectedFields := []string{
		"Round 2",
		"Turn: second",
		"Cross at (0,1)",
		"- first: 3 (total 10)",
		"- second: 5 (total 8)",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatState_RoundOver(t *testing.T) {
	state := &service.StateSnapshot{
		Round:         1,
		CurrentPlayer: engine.First,
		Players:       []engine.Player{engine.First, engine.Second},
		RoundScores:   map[string]int{"first": 0, "second": 0},
		Totals:        map[string]int{"first": 0, "second": 0},
		RoundOver:     true,
	}

	result := formatState(state)

	if !strings.Contains(result, "Round over: no numbered tiles remain") {
		t.Errorf("Expected round-over notice in result, got: %s", result)
	}
}

func TestGameInstructionsStateRoundEndRule(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("game_instructions failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	// A round ends when the board is cleared; a stuck player does not end it.
	if !strings.Contains(text.Text, "A round ends when no numbered tile remains") {
		t.Errorf("Expected board-cleared round-end rule, got: %s", text.Text)
	}
	if strings.Contains(text.Text, "ends when the current player has no tile") {
		t.Errorf("Instructions must not tie round end to the current player's axis, got: %s", text.Text)
	}
}

func TestFormatMoveResult_Rejection(t *testing.T) {
	mover := engine.First
	result := formatMoveResult(&service.MoveResult{
		Success: false,
		Events: []manager.Event{{
			Type:   manager.EventInvalidMove,
			Player: &mover,
			Reason: "invalid move: first cannot reach (3,3)",
		}},
		State: &service.StateSnapshot{
			Round:         1,
			CurrentPlayer: engine.First,
			Players:       []engine.Player{engine.First, engine.Second},
			RoundScores:   map[string]int{"first": 0, "second": 0},
			Totals:        map[string]int{"first": 0, "second": 0},
		},
	})

	if !strings.Contains(result, "Move rejected") {
		t.Errorf("Expected rejection header, got: %s", result)
	}
	if !strings.Contains(result, "cannot reach") {
		t.Errorf("Expected rejection reason, got: %s", result)
	}
}
