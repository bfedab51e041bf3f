package match

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/make-ten/pkg/http/errors"
	"github.com/gokatarajesh/make-ten/pkg/http/ws"
)

// runningLoop starts a loop that stops with the test.
func runningLoop(t *testing.T) *Loop {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(64)
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	return loop
}

func newTestHandler(t *testing.T) (*Handler, *recordingSender, *Loop) {
	t.Helper()
	f := newFixture(t)
	loop := runningLoop(t)
	h := NewHandler(f.svc, loop, ws.NewHub(zerolog.New(io.Discard)), zerolog.New(io.Discard))
	h.sender = f.sender
	return h, f.sender, loop
}

func flush(t *testing.T, loop *Loop) {
	t.Helper()
	require.NoError(t, loop.Do(context.Background(), func() {}))
}

func rawMessage(t *testing.T, msgType, payload string) ws.Message {
	t.Helper()
	return ws.Message{Type: msgType, Payload: json.RawMessage(payload)}
}

func TestHandleMessageRoutesToService(t *testing.T) {
	h, sender, loop := newTestHandler(t)

	require.NoError(t, h.handleMessage("a", rawMessage(t, ws.TypeJoinRoom, `{"roomId":"123456","playerName":"Ana"}`)))
	require.NoError(t, h.handleMessage("a", rawMessage(t, ws.TypeStartGame, `{"roomId":"123456"}`)))
	require.NoError(t, h.handleMessage("a", rawMessage(t, ws.TypeSkipProblem, `{"roomId":"123456"}`)))
	require.NoError(t, h.handleMessage("a", rawMessage(t, ws.TypeSubmitAnswer, `{"roomId":"123456","formula":"1+2+3+4"}`)))
	flush(t, loop)

	assert.Len(t, sender.of("a", ws.TypeRoomJoined), 1)
	assert.Len(t, sender.of("a", ws.TypeStartCountdownBegin), 1)
	// skip and submit arrive before the countdown finishes
	assert.Equal(t, httperrors.ErrCodeGameNotActive, decode[ws.ErrorPayload](t, sender.last(t, "a", ws.TypeError)).Code)
	assert.Len(t, sender.of("a", ws.TypeError), 2)
}

func TestHandleMessageRejectsBadPayload(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	require.NoError(t, h.handleMessage("a", rawMessage(t, ws.TypeSubmitAnswer, `"oops"`)))
	payload := decode[ws.ErrorPayload](t, sender.last(t, "a", ws.TypeError))
	assert.Equal(t, httperrors.ErrCodeInvalidPayload, payload.Code)

	require.NoError(t, h.handleMessage("a", ws.Message{Type: ws.TypeJoinRoom}))
	assert.Len(t, sender.of("a", ws.TypeError), 2)
}

func TestHandleMessageUnknownType(t *testing.T) {
	h, sender, _ := newTestHandler(t)

	require.NoError(t, h.handleMessage("a", rawMessage(t, "dance", `{}`)))
	payload := decode[ws.ErrorPayload](t, sender.last(t, "a", ws.TypeError))
	assert.Equal(t, httperrors.ErrCodeUnknownMessageType, payload.Code)
	assert.Contains(t, payload.Message, "dance")
}

func TestWebSocketSession(t *testing.T) {
	loop := runningLoop(t)
	hub := ws.NewHub(zerolog.New(io.Discard))
	svc := NewService(Dependencies{
		Sender:    hub,
		Scheduler: NewLoopScheduler(loop),
	}, ServiceOptions{}, zerolog.New(io.Discard))
	h := NewHandler(svc, loop, hub, zerolog.New(io.Discard))

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	read := func() ws.Message {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg ws.Message
		require.NoError(t, client.ReadJSON(&msg))
		return msg
	}

	hello := read()
	require.Equal(t, ws.TypeConnected, hello.Type)
	clientID := decode[ws.ConnectedPayload](t, hello).ClientID
	assert.NotEmpty(t, clientID)

	require.NoError(t, client.WriteJSON(ws.NewMessage(ws.TypeJoinRoom, ws.JoinRoomPayload{RoomID: "654321", PlayerName: "Ana"})))
	joined := read()
	require.Equal(t, ws.TypeRoomJoined, joined.Type)
	payload := decode[ws.RoomJoinedPayload](t, joined)
	require.Len(t, payload.Players, 1)
	assert.Equal(t, clientID, payload.Players[0].ID)
	assert.Len(t, payload.Players[0].CurrentDigits, 4)

	client.Close()
	require.Eventually(t, func() bool {
		n := -1
		if err := loop.Do(context.Background(), func() { n = svc.Registry().Len() }); err != nil {
			return false
		}
		return n == 0
	}, 2*time.Second, 10*time.Millisecond)
}
