/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	golocalv1 "github.com/caiflower/minihttpd/pkg/golocal/v1"
	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/pkg/pool"
	"github.com/caiflower/minihttpd/pkg/safego"
	"github.com/caiflower/minihttpd/pkg/tools"
	"github.com/caiflower/minihttpd/web/protocol"
)

const noMethod = "-"

// Server accepts TCP connections and answers exactly one request on each.
// Every connection becomes one pool job: read once, decode, handle, write,
// close. There are no read or write deadlines.
type Server struct {
	cfg     Config
	pool    *pool.WorkerPool
	factory HandlerFactory
	logger  logger.ILog
	metric  *serverMetric

	lock     sync.Mutex
	listener net.Listener
}

// NewServer fills unset cfg fields from their defaults and starts a worker
// pool of cfg.Workers goroutines for the server.
func NewServer(cfg Config, factory HandlerFactory) *Server {
	_ = tools.SetDefaults(&cfg)
	log := logger.DefaultLogger()
	return NewServerWithPool(cfg, pool.NewWorkerPoolWithLogger(cfg.Name, cfg.Workers, log), factory, log)
}

func NewServerWithPool(cfg Config, workers *pool.WorkerPool, factory HandlerFactory, log logger.ILog) *Server {
	_ = tools.SetDefaults(&cfg)
	if factory == nil {
		panic("[server] handler factory must not be nil. ")
	}

	return &Server{
		cfg:     cfg,
		pool:    workers,
		factory: factory,
		logger:  log,
		metric:  newServerMetric(cfg.Name),
	}
}

func (s *Server) Name() string {
	return fmt.Sprintf("MINIHTTPD:%s", s.cfg.Name)
}

// Addr is the bound address, or nil before the server is listening.
func (s *Server) Addr() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Pool() *pool.WorkerPool {
	return s.pool
}

// ListenAndServe binds cfg.Addr and runs the accept loop on the calling
// goroutine. It returns the bind error, or nil once Close stops the loop.
func (s *Server) ListenAndServe() error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	s.acceptLoop(ln)
	return nil
}

// Start binds synchronously and runs the accept loop in the background.
func (s *Server) Start() error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	safego.Go("[server] accept loop "+s.cfg.Name, func() {
		s.acceptLoop(ln)
	})
	return nil
}

// Close stops accepting. Jobs already queued still run.
func (s *Server) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return
	}

	s.logger.Info("      **** minihttpd server %s shutdown ****", s.cfg.Name)
	if err := s.listener.Close(); err != nil {
		s.logger.Warn("[server] close listener failed. Error: %s", err.Error())
	}
	s.listener = nil
}

func (s *Server) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	s.lock.Lock()
	s.listener = ln
	s.lock.Unlock()

	s.logger.Info(
		"\n***************************** minihttpd server startup *****************************************\n"+
			"************* web service [name:%s] [workers:%d] listening on %s *********\n"+
			"*************************************************************************************************", s.cfg.Name, s.pool.Size(), ln.Addr().String())
	return ln, nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.metric.acceptFailed()
			s.logger.Error("[server] accept failed. Error: %s", err.Error())

			// back off so a persistent error such as EMFILE does not spin
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else if delay *= 2; delay > time.Second {
				delay = time.Second
			}
			time.Sleep(delay)
			continue
		}
		delay = 0

		s.metric.connected()
		s.pool.Execute(func() {
			s.serve(conn)
		})
	}
}

func (s *Server) serve(conn net.Conn) {
	start := time.Now()
	golocalv1.PutTraceID(tools.UUID())
	golocalv1.PutRemoteAddr(conn.RemoteAddr().String())
	defer golocalv1.Clean()
	defer conn.Close()

	// one read only; bytes beyond the buffer are never looked at
	buf := make([]byte, s.cfg.ReadBufferSize)
	if _, err := conn.Read(buf); err != nil {
		s.logger.Warn("[server] read from %s failed. Error: %s", conn.RemoteAddr().String(), err.Error())
		return
	}

	handler := s.factory()
	method := noMethod

	var resp *protocol.Response
	req, err := protocol.Decode(buf)
	if err != nil {
		if pe, ok := protocol.AsParseError(err); ok {
			s.metric.parseFailed(pe.Kind())
		}
		resp = handleBadRequest(handler, err)
	} else {
		method = req.Method().String()
		s.logger.Debug("[server] %s from %s", req.String(), golocalv1.GetRemoteAddr())
		resp = handler.HandleRequest(req)
	}

	if resp == nil {
		s.logger.Error("[server] handler returned no response; answering %d. ", protocol.StatusInternalServerError)
		resp = protocol.NewResponse(protocol.StatusInternalServerError, nil)
	}

	if _, err = resp.WriteTo(conn); err != nil {
		s.logger.Error("[server] write response to %s failed. Error: %s", conn.RemoteAddr().String(), err.Error())
	}

	s.metric.answered(resp.StatusCode().String(), method, time.Since(start).Milliseconds())
}
