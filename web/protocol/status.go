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
	"net/http"
	"strconv"
)

type StatusCode int

const (
	StatusOK                  StatusCode = http.StatusOK
	StatusBadRequest          StatusCode = http.StatusBadRequest
	StatusNotFound            StatusCode = http.StatusNotFound
	StatusInternalServerError StatusCode = http.StatusInternalServerError
)

// ReasonPhrase returns the fixed phrase of the status line, e.g. "Not Found".
func (c StatusCode) ReasonPhrase() string {
	if text := http.StatusText(int(c)); text != "" {
		return text
	}
	return "Unknown"
}

func (c StatusCode) String() string {
	return strconv.Itoa(int(c))
}
