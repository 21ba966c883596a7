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

package protocol

import (
	"strings"
	"unicode/utf8"
)

const Version = "HTTP/1.1"

// Request is a decoded request line. Only Decode creates one.
type Request struct {
	method Method
	target string
	path   string
	query  *QueryString
}

func (r *Request) Method() Method {
	return r.method
}

// Path is the target without its query component; it never contains '?'.
func (r *Request) Path() string {
	return r.path
}

// Query is nil when the target had no '?'.
func (r *Request) Query() *QueryString {
	return r.query
}

func (r *Request) String() string {
	return string(r.method) + " " + r.target
}

// Decode parses the request line at the start of buf, e.g.
//
//	GET /search?name=abs&sort=1 HTTP/1.1\r\n
//
// buf may be a zero padded read buffer. Header lines and anything after the
// protocol token are ignored.
func Decode(buf []byte) (*Request, error) {
	if !utf8.Valid(buf) {
		return nil, ErrInvalidEncoding
	}
	rest := string(buf)

	method, rest, ok := nextWord(rest)
	if !ok {
		return nil, ErrInvalidRequest
	}
	target, rest, ok := nextWord(rest)
	if !ok {
		return nil, ErrInvalidRequest
	}
	version, _, ok := nextWord(rest)
	if !ok {
		return nil, ErrInvalidRequest
	}

	if version != Version {
		return nil, ErrInvalidProtocol
	}

	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}

	req := &Request{method: m, target: target, path: target}
	if i := strings.IndexByte(target, '?'); i >= 0 {
		req.path = target[:i]
		req.query = ParseQueryString(target[i+1:])
	}

	return req, nil
}

// nextWord returns the text before the first ' ' or '\r' and the text after
// that delimiter. ok is false when s has no delimiter.
func nextWord(s string) (word, rest string, ok bool) {
	i := strings.IndexAny(s, " \r")
	if i < 0 {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}
