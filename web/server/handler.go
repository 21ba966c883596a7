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
	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/web/protocol"
)

// Handler produces the response for a decoded request. It is called from
// pool workers, so an implementation shared between connections must be safe
// for concurrent use.
type Handler interface {
	HandleRequest(req *protocol.Request) *protocol.Response
}

// BadRequestHandler is implemented by handlers that answer undecodable
// request lines themselves. Handlers without it get DefaultBadRequest.
type BadRequestHandler interface {
	HandleBadRequest(err error) *protocol.Response
}

// HandlerFactory is called once per connection.
type HandlerFactory func() Handler

// Singleton returns a factory that hands out h for every connection.
func Singleton(h Handler) HandlerFactory {
	return func() Handler {
		return h
	}
}

type HandlerFunc func(req *protocol.Request) *protocol.Response

func (f HandlerFunc) HandleRequest(req *protocol.Request) *protocol.Response {
	return f(req)
}

// BaseHandler is embedded by handlers that keep the default bad request
// behaviour. Declaring HandleBadRequest on the outer type overrides it.
type BaseHandler struct{}

func (BaseHandler) HandleBadRequest(err error) *protocol.Response {
	return DefaultBadRequest(err)
}

// DefaultBadRequest logs the decode error and answers 400 with no body.
func DefaultBadRequest(err error) *protocol.Response {
	logger.Error("[server] Failed to parse request: %v", err)
	return protocol.NewResponse(protocol.StatusBadRequest, nil)
}

func handleBadRequest(h Handler, err error) *protocol.Response {
	if bh, ok := h.(BadRequestHandler); ok {
		return bh.HandleBadRequest(err)
	}
	return DefaultBadRequest(err)
}
