package server

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vcrc/cycle"
	"vcrc/failure"
	"vcrc/model"
)

// Hub serves the messages of one websocket connection.
type Hub struct {
	s    *Server
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
}

func NewHub(s *Server, conn *websocket.Conn) *Hub {
	return &Hub{
		s:     s,
		conn:  conn,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
	}
}

func (h *Hub) handleResponse() {
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithField("type", reply.Type).Error("write reply: ", err)
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.handle(ctx, msg)
	}
}

func (h *Hub) handle(ctx context.Context, msg model.Msg) model.Msg {
	entry := log.WithField("type", msg.Type)
	var (
		replyType string
		content   interface{}
		err       error
	)
	switch msg.Type {
	case model.MsgCycle:
		replyType = model.MsgCycleRes
		content, err = h.cycle(msg.Content)
	case model.MsgAnalysis:
		replyType = model.MsgAnalysisRes
		content, err = h.analysis(msg.Content)
	case model.MsgSweep:
		replyType = model.MsgSweepRes
		content, err = h.sweep(ctx, msg.Content)
	case model.MsgHistory:
		replyType = model.MsgHistRes
		content = h.s.history.Results()
	default:
		err = failure.Configf("no such type %q", msg.Type)
	}
	if err != nil {
		entry.Warn(err)
		return model.Msg{Type: model.MsgError, Content: err.Error()}
	}
	data, err := json.Marshal(content)
	if err != nil {
		entry.Error(err)
		return model.Msg{Type: model.MsgError, Content: err.Error()}
	}
	entry.Info("request served")
	return model.Msg{Type: replyType, Content: string(data)}
}

func decode(content string, v interface{}) error {
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return failure.Configf("bad message content: %v", err)
	}
	return nil
}

func (h *Hub) cycle(content string) (model.CycleResult, error) {
	var req model.CycleRequest
	if err := decode(content, &req); err != nil {
		return model.CycleResult{}, err
	}
	res, err := cycle.Run(req, h.s.oracle, h.s.options...)
	if err != nil {
		return model.CycleResult{}, err
	}
	h.s.history.Add(res)
	return res, nil
}

func (h *Hub) analysis(content string) (*model.Analysis, error) {
	var req model.CycleRequest
	if err := decode(content, &req); err != nil {
		return nil, err
	}
	if req.Boundary == nil {
		return nil, failure.Boundaryf("analysis needs the indoor and outdoor temperatures")
	}
	res, err := cycle.Run(req, h.s.oracle, h.s.options...)
	if err != nil {
		return nil, err
	}
	return res.Analysis, nil
}

func (h *Hub) sweep(ctx context.Context, content string) ([]model.SweepPoint, error) {
	var s model.Sweep
	if err := decode(content, &s); err != nil {
		return nil, err
	}
	return h.s.executor.Run(ctx, s)
}
