package effects

import (
	"context"
	"encoding/json"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/folio-dev/folio/internal/config"
)

// Default viewport used until the client reports its size.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientMessage is sent by the browser to steer its simulation.
type ClientMessage struct {
	Type     string  `json:"type"` // resize, scroll, hover, hover_end, intersect
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Velocity float64 `json:"velocity,omitempty"`
	Row      int     `json:"row,omitempty"`
	Col      int     `json:"col,omitempty"`
}

// LinkView is a link as drawn by the client.
type LinkView struct {
	From      int     `json:"from"`
	To        int     `json:"to"`
	Intensity float64 `json:"intensity"`
	Progress  float64 `json:"progress"`
}

// Frame is one rendered state of both simulations.
type Frame struct {
	Type         string           `json:"type"` // "frame" or "error"
	Seq          uint64           `json:"seq"`
	Width        float64          `json:"width"`
	Height       float64          `json:"height"`
	Nodes        []Node           `json:"nodes"`
	Edges        [][2]int         `json:"edges"`
	Links        []LinkView       `json:"links"`
	Cells        [Size][Size]Cell `json:"cells"`
	HighlightRow int              `json:"highlight_row"`
	HighlightCol int              `json:"highlight_col"`
	Error        string           `json:"error,omitempty"`
}

// Scene couples a neural field and a Sudoku board for one viewer. It is
// not safe for concurrent use; the stream loop owns it.
type Scene struct {
	Field *Field
	Board *Board
	seq   uint64
}

// NewScene creates a scene with its own random source.
func NewScene(level config.Intensity, now time.Time, rng *rand.Rand) *Scene {
	return &Scene{
		Field: NewField(DefaultWidth, DefaultHeight, level, rng),
		Board: NewBoard(now, rng),
	}
}

// Apply handles one client message.
func (s *Scene) Apply(msg ClientMessage, now time.Time) error {
	switch msg.Type {
	case "resize":
		s.Field.Resize(msg.Width, msg.Height)
	case "scroll":
		s.Field.SetScroll(msg.Velocity)
	case "hover":
		return s.Board.Hover(msg.Row, msg.Col)
	case "hover_end":
		s.Board.HoverEnd()
	case "intersect":
		s.Board.Celebrate(now)
	default:
		return &UnknownMessageError{Type: msg.Type}
	}
	return nil
}

// Advance steps the field steps times and ticks the board.
func (s *Scene) Advance(steps int, now time.Time) {
	for i := 0; i < steps; i++ {
		s.Field.Step()
	}
	s.Board.Tick(now)
}

// Frame snapshots the scene.
func (s *Scene) Frame() Frame {
	s.seq++
	links := make([]LinkView, len(s.Field.Links))
	for i, l := range s.Field.Links {
		links[i] = LinkView{From: l.From, To: l.To, Intensity: l.Intensity, Progress: l.Progress()}
	}
	nodes := make([]Node, len(s.Field.Nodes))
	copy(nodes, s.Field.Nodes)
	edges := make([][2]int, len(s.Field.Edges))
	copy(edges, s.Field.Edges)
	return Frame{
		Type:         "frame",
		Seq:          s.seq,
		Width:        s.Field.Width,
		Height:       s.Field.Height,
		Nodes:        nodes,
		Edges:        edges,
		Links:        links,
		Cells:        s.Board.Cells,
		HighlightRow: s.Board.HighlightRow,
		HighlightCol: s.Board.HighlightCol,
	}
}

// UnknownMessageError is returned by Apply for unsupported message types.
type UnknownMessageError struct {
	Type string
}

func (e *UnknownMessageError) Error() string {
	return "unknown message type: " + e.Type
}

// Streamer serves one Scene per websocket connection.
type Streamer struct {
	FPS       int
	Intensity config.Intensity

	// Now and NewRand are replaceable for tests.
	Now     func() time.Time
	NewRand func() *rand.Rand
}

// NewStreamer creates a Streamer from the effects configuration.
func NewStreamer(cfg config.EffectsConfig) *Streamer {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	return &Streamer{
		FPS:       fps,
		Intensity: cfg.Intensity,
		Now:       time.Now,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// stepsPerFrame keeps the simulation at its native 60 steps per second
// regardless of the frame rate sent to the client.
func (s *Streamer) stepsPerFrame() int {
	if s.FPS >= 60 {
		return 1
	}
	return (60 + s.FPS - 1) / s.FPS
}

// ServeHTTP upgrades the connection and streams frames until the client
// goes away.
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("effects: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	msgs := make(chan ClientMessage, 16)
	go s.readLoop(ctx, cancel, conn, msgs)

	s.run(ctx, conn, msgs)
}

func (s *Streamer) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- ClientMessage) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("effects: websocket read: %v", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			msg = ClientMessage{Type: "invalid"}
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Streamer) run(ctx context.Context, conn *websocket.Conn, msgs <-chan ClientMessage) {
	scene := NewScene(s.Intensity, s.Now(), s.NewRand())
	ticker := time.NewTicker(time.Second / time.Duration(s.FPS))
	defer ticker.Stop()

	steps := s.stepsPerFrame()
	if err := conn.WriteJSON(scene.Frame()); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-msgs:
			if err := scene.Apply(msg, s.Now()); err != nil {
				if err := conn.WriteJSON(Frame{Type: "error", Error: err.Error()}); err != nil {
					return
				}
			}
		case <-ticker.C:
			scene.Advance(steps, s.Now())
			if err := conn.WriteJSON(scene.Frame()); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("effects: websocket write: %v", err)
				}
				return
			}
		}
	}
}
