package controller

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/scalechess-backend/internal/model"
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/benbeisheim/scalechess-backend/internal/ws"
	. "gopkg.in/check.v1"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, v.(ws.Message))
	return nil
}

func (f *fakeConn) lastState(c *C) model.ClientState {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := f.messages[len(f.messages)-1]
	c.Assert(msg.Type, Equals, ws.MessageTypeGameState)
	var cs model.ClientState
	c.Assert(json.Unmarshal(msg.Payload, &cs), IsNil)
	return cs
}

type WebSocketSuite struct {
	wsc    *WebSocketController
	gs     *service.GameService
	conn   *fakeConn
	gameID string
}

var _ = Suite(&WebSocketSuite{})

func (s *WebSocketSuite) SetUpTest(c *C) {
	s.gs = service.NewGameService(service.NewGameManager(time.Minute))
	s.wsc = NewWebSocketController(s.gs)
	state, err := s.gs.CreateGame()
	c.Assert(err, IsNil)
	s.gameID = state.GameID
	s.conn = &fakeConn{}
	c.Assert(s.gs.RegisterConnection(s.gameID, "conn", s.conn), IsNil)
}

func message(msgType ws.MessageType, payload string) ws.Message {
	msg := ws.Message{Type: msgType}
	if payload != "" {
		msg.Payload = json.RawMessage(payload)
	}
	return msg
}

func (s *WebSocketSuite) TestClickAndConfirm(c *C) {
	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeClick, `{"square":"d7"}`)), IsNil)
	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeClick, `{"row":3,"col":3}`)), IsNil)
	c.Assert(s.conn.lastState(c).Prompt, Equals, "Move from d7 to d5?")

	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeConfirm, "")), IsNil)
	cs := s.conn.lastState(c)
	c.Assert(cs.State.MovesLeft, Equals, 1)
	c.Assert(cs.State.Board[1][3], IsNil)
}

func (s *WebSocketSuite) TestDragCancelMoveReset(c *C) {
	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeDrag, `{"from":"g8","to":"f6"}`)), IsNil)
	c.Assert(s.conn.lastState(c).Selection.Pending, NotNil)
	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeCancel, "")), IsNil)
	c.Assert(s.conn.lastState(c).Selection.Pending, IsNil)

	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeMove, `{"from":"g8","to":"f6"}`)), IsNil)
	c.Assert(s.conn.lastState(c).State.MovesLeft, Equals, 1)

	c.Assert(s.wsc.handleMessage(s.gameID, message(ws.MessageTypeReset, "")), IsNil)
	c.Assert(s.conn.lastState(c).State, DeepEquals, model.InitialGameState())
}

func (s *WebSocketSuite) TestRejections(c *C) {
	err := s.wsc.handleMessage(s.gameID, message(ws.MessageTypeMove, `{"from":"a1","to":"a2"}`))
	c.Assert(errors.Is(err, model.ErrIllegalMove), Equals, true)

	err = s.wsc.handleMessage(s.gameID, message(ws.MessageTypeConfirm, ""))
	c.Assert(errors.Is(err, model.ErrNoPendingMove), Equals, true)

	err = s.wsc.handleMessage(s.gameID, message(ws.MessageTypeClick, `{"square":"j1"}`))
	c.Assert(errors.Is(err, model.ErrInvalidSquare), Equals, true)

	err = s.wsc.handleMessage(s.gameID, message("resign", ""))
	c.Assert(err, ErrorMatches, "unknown message type: resign")

	err = s.wsc.handleMessage(unknownGameID, message(ws.MessageTypeConfirm, ""))
	c.Assert(errors.Is(err, service.ErrGameNotFound), Equals, true)
}

func (s *WebSocketSuite) TestReportError(c *C) {
	s.wsc.reportError(s.gameID, "conn", errors.New("illegal move: a1 to a2"))
	s.conn.mu.Lock()
	defer s.conn.mu.Unlock()
	msg := s.conn.messages[len(s.conn.messages)-1]
	c.Assert(msg.Type, Equals, ws.MessageTypeError)
	c.Assert(string(msg.Payload), Equals, `{"error":"illegal move: a1 to a2"}`)
}
