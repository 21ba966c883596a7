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
	"bytes"
	"io"
	"strconv"
)

type Response struct {
	statusCode StatusCode
	body       *string
}

// NewResponse builds a response; a nil body is sent as an empty body.
func NewResponse(statusCode StatusCode, body *string) *Response {
	return &Response{statusCode: statusCode, body: body}
}

func NewResponseWithBody(statusCode StatusCode, body string) *Response {
	return &Response{statusCode: statusCode, body: &body}
}

func (resp *Response) StatusCode() StatusCode {
	return resp.statusCode
}

func (resp *Response) Body() (string, bool) {
	if resp.body == nil {
		return "", false
	}
	return *resp.body, true
}

// Bytes renders "HTTP/1.1 <code> <reason>\r\n\r\n<body>". No headers are
// written, not even Content-Length; the connection is closed after the body.
func (resp *Response) Bytes() []byte {
	body, _ := resp.Body()
	phrase := resp.statusCode.ReasonPhrase()

	var buf bytes.Buffer
	buf.Grow(len(Version) + len(phrase) + len(body) + 9)
	buf.WriteString(Version)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(int(resp.statusCode)))
	buf.WriteByte(' ')
	buf.WriteString(phrase)
	buf.WriteString("\r\n\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

func (resp *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(resp.Bytes())
	return int64(n), err
}
