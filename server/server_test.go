package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"vcrc/config"
	"vcrc/fluid"
	"vcrc/model"
)

func newTestServer(t *testing.T, historySize int) (*Server, *websocket.Conn) {
	t.Helper()
	cfg := config.Default()
	cfg.Server.HistorySize = historySize
	s, err := NewServer(cfg, fluid.NewCorrelationOracle())
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return s, conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, typ string, content interface{}) model.Msg {
	t.Helper()
	msg := model.Msg{Type: typ}
	if content != nil {
		data, err := json.Marshal(content)
		if err != nil {
			t.Fatal(err)
		}
		msg.Content = string(data)
	}
	if err := conn.WriteJSON(&msg); err != nil {
		t.Fatal(err)
	}
	var reply model.Msg
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	return reply
}

func request(name string, tk float64) model.CycleRequest {
	return model.CycleRequest{
		Name:                 name,
		Topology:             "simple",
		Refrigerant:          "R32",
		Evaporator:           model.Evaporator{Temperature: 5, Superheat: 8},
		Condenser:            &model.Condenser{Temperature: tk, Subcooling: 3},
		CompressorEfficiency: 80,
		Boundary:             &model.Boundary{Indoor: 18, Outdoor: 35},
	}
}

func TestCycleMessage(t *testing.T) {
	_, conn := newTestServer(t, 32)
	reply := roundTrip(t, conn, model.MsgCycle, request("a", 45))
	if reply.Type != model.MsgCycleRes {
		t.Fatalf("reply %+v", reply)
	}
	var res model.CycleResult
	if err := json.Unmarshal([]byte(reply.Content), &res); err != nil {
		t.Fatal(err)
	}
	if res.Name != "a" || len(res.Points) != 5 || res.Analysis == nil || !(res.EER > 0) {
		t.Errorf("result %+v", res)
	}

	reply = roundTrip(t, conn, model.MsgAnalysis, request("a", 45))
	if reply.Type != model.MsgAnalysisRes {
		t.Fatalf("reply %+v", reply)
	}
	var a model.Analysis
	if err := json.Unmarshal([]byte(reply.Content), &a); err != nil {
		t.Fatal(err)
	}
	if a.Mode != "cooling" || len(a.Ratios) == 0 {
		t.Errorf("analysis %+v", a)
	}
}

func TestErrorMessages(t *testing.T) {
	_, conn := newTestServer(t, 32)
	bad := request("bad", 45)
	bad.Condenser.Temperature = 0
	noBoundary := request("b", 45)
	noBoundary.Boundary = nil
	for _, c := range []struct {
		typ     string
		content interface{}
	}{
		{model.MsgCycle, bad},
		{model.MsgCycle, "not a request"},
		{model.MsgAnalysis, noBoundary},
		{"start", nil},
	} {
		if reply := roundTrip(t, conn, c.typ, c.content); reply.Type != model.MsgError || reply.Content == "" {
			t.Errorf("%s: reply %+v", c.typ, reply)
		}
	}
}

func TestHistory(t *testing.T) {
	s, conn := newTestServer(t, 3)
	for i, tk := range []float64{40, 45, 50, 55, 60} {
		if reply := roundTrip(t, conn, model.MsgCycle, request(string(rune('a'+i)), tk)); reply.Type != model.MsgCycleRes {
			t.Fatalf("reply %+v", reply)
		}
	}
	// condensing at the outdoor temperature fails the analysis and stays out of the history
	if reply := roundTrip(t, conn, model.MsgCycle, request("f", 35)); reply.Type != model.MsgError {
		t.Errorf("reply %+v", reply)
	}
	reply := roundTrip(t, conn, model.MsgHistory, nil)
	var results []model.CycleResult
	if err := json.Unmarshal([]byte(reply.Content), &results); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, r := range results {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "c,d,e" {
		t.Errorf("history %v", names)
	}
	if len(s.History().Results()) != 3 {
		t.Errorf("history size %d", len(s.History().Results()))
	}
}

func TestSweepMessage(t *testing.T) {
	_, conn := newTestServer(t, 32)
	sw := model.Sweep{
		Name:      "superheat",
		Base:      request("", 45),
		Parameter: model.ParamSuperheat,
		From:      0,
		To:        10,
		Step:      2,
	}
	reply := roundTrip(t, conn, model.MsgSweep, sw)
	if reply.Type != model.MsgSweepRes {
		t.Fatalf("reply %+v", reply)
	}
	var points []model.SweepPoint
	if err := json.Unmarshal([]byte(reply.Content), &points); err != nil {
		t.Fatal(err)
	}
	if len(points) != 6 {
		t.Fatalf("points %d", len(points))
	}
	for _, p := range points {
		if p.Error != "" || p.Result == nil {
			t.Errorf("superheat %g: %s", p.Value, p.Error)
		}
	}
}
