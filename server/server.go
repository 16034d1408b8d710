package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vcrc/config"
	"vcrc/cycle"
	"vcrc/fluid"
	"vcrc/model"
	"vcrc/sweep"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	oracle   fluid.Oracle
	options  []cycle.Option
	executor *sweep.Executor
	history  *History
}

func NewServer(cfg *config.Config, oracle fluid.Oracle) (*Server, error) {
	options := []cycle.Option{cycle.SolverOptions(cfg.Solver)}
	executor, err := sweep.NewExecutor(cfg.Sweep.Workers, oracle, options...)
	if err != nil {
		return nil, err
	}
	return &Server{
		addr: cfg.Server.Addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		oracle:   oracle,
		options:  options,
		executor: executor,
		history:  NewHistory(cfg.Server.HistorySize),
	}, nil
}

func (s *Server) History() *History { return s.history }

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer conn.Close()
	entry := log.WithField("remote", conn.RemoteAddr().String())
	entry.Info("connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(s, conn)
	done := make(chan struct{})
	go hub.handleRequest(ctx)
	go func() {
		hub.handleResponse()
		close(done)
	}()
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				entry.Warn("read: ", err)
			}
			break
		}
		hub.msg <- msg
	}
	cancel()
	close(hub.msg)
	<-done
	entry.Info("disconnected")
}

// Handler routes /ws to the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
