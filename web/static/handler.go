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

package static

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caiflower/minihttpd/pkg/cache"
	golocalv1 "github.com/caiflower/minihttpd/pkg/golocal/v1"
	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/web/protocol"
	"github.com/caiflower/minihttpd/web/server"
)

const (
	indexFile = "index.html"
	helloFile = "hello.html"
)

// Handler serves files below a public directory. It holds no per connection
// state, so one instance is shared by every worker.
type Handler struct {
	server.BaseHandler

	root   string
	logger logger.ILog
	cache  *cache.LocalCache[string]
}

type Option func(h *Handler)

// WithCacheTTL caches file contents for ttl. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl > 0 {
			h.cache = cache.NewLocalCache[string](ttl)
		} else {
			h.cache = nil
		}
	}
}

func WithLogger(log logger.ILog) Option {
	return func(h *Handler) {
		h.logger = log
	}
}

// NewHandler resolves root once. It fails when root does not exist.
func NewHandler(root string, opts ...Option) (*Handler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve public path %s: %w", root, err)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve public path %s: %w", root, err)
	}

	h := &Handler{
		root:   abs,
		logger: logger.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Factory shares h between all connections.
func Factory(h *Handler) server.HandlerFactory {
	return server.Singleton(h)
}

func (h *Handler) Root() string {
	return h.root
}

func (h *Handler) HandleRequest(req *protocol.Request) *protocol.Response {
	if req.Method() != protocol.MethodGet {
		return protocol.NewResponse(protocol.StatusNotFound, nil)
	}

	switch req.Path() {
	case "/":
		return protocol.NewResponse(protocol.StatusOK, h.readFile(indexFile))
	case "/hello":
		return protocol.NewResponse(protocol.StatusOK, h.readFile(helloFile))
	default:
		if content := h.readFile(req.Path()); content != nil {
			return protocol.NewResponse(protocol.StatusOK, content)
		}
		return protocol.NewResponse(protocol.StatusNotFound, nil)
	}
}

// readFile returns nil when name is missing, unreadable or resolves outside
// the root.
func (h *Handler) readFile(name string) *string {
	full, err := filepath.EvalSymlinks(filepath.Join(h.root, name))
	if err != nil {
		return nil
	}
	if !h.contains(full) {
		h.logger.Warn("[static] directory traversal attempt: %s from %s", name, golocalv1.GetRemoteAddr())
		return nil
	}

	if h.cache != nil {
		if content, ok := h.cache.Get(full); ok {
			return &content
		}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		h.logger.Debug("[static] read %s failed. Error: %s", full, err.Error())
		return nil
	}

	content := string(data)
	if h.cache != nil {
		h.cache.Set(full, content)
	}
	return &content
}

func (h *Handler) contains(path string) bool {
	rel, err := filepath.Rel(h.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
