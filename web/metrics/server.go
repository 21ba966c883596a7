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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/pkg/safego"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the default prometheus registry on /metrics.
type Server struct {
	addr   string
	logger logger.ILog

	lock     sync.Mutex
	server   *http.Server
	listener net.Listener
}

func NewServer(addr string) *Server {
	return &Server{addr: addr, logger: logger.DefaultLogger()}
}

func (s *Server) Name() string {
	return fmt.Sprintf("METRICS_SERVER:%s", s.addr)
}

func (s *Server) Addr() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.lock.Lock()
	s.server = srv
	s.listener = ln
	s.lock.Unlock()

	s.logger.Info("[metrics] serving /metrics on %s", ln.Addr().String())
	safego.Go("[metrics] serve", func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("[metrics] serve failed. Error: %s", err.Error())
		}
	})
	return nil
}

func (s *Server) Close() {
	s.lock.Lock()
	srv := s.server
	s.server = nil
	s.listener = nil
	s.lock.Unlock()
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Warn("[metrics] shutdown failed. Error: %s", err.Error())
	}
}
