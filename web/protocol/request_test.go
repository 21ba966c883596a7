package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padded mimics the fixed size read buffer the server hands to Decode.
func padded(s string) []byte {
	buf := make([]byte, 1024)
	copy(buf, s)
	return buf
}

func TestDecodeSearch(t *testing.T) {
	req, err := Decode(padded("GET /search?name=abs&sort=1 HTTP/1.1\r\nHost: localhost\r\n\r\n"))
	require.NoError(t, err)

	assert.Equal(t, MethodGet, req.Method())
	assert.Equal(t, "/search", req.Path())
	assert.Equal(t, "GET /search?name=abs&sort=1", req.String())

	q := req.Query()
	require.NotNil(t, q)
	if diff := cmp.Diff([]string{"name", "sort"}, q.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	name, ok := q.Get("name")
	require.True(t, ok)
	v, single := name.Single()
	assert.True(t, single)
	assert.Equal(t, "abs", v)

	sort, _ := q.Get("sort")
	v, _ = sort.Single()
	assert.Equal(t, "1", v)
}

func TestDecodeWithoutQuery(t *testing.T) {
	req, err := Decode(padded("POST /upload HTTP/1.1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, MethodPost, req.Method())
	assert.Equal(t, "/upload", req.Path())
	assert.Nil(t, req.Query())
}

func TestDecodeEmptyQuery(t *testing.T) {
	req, err := Decode([]byte("GET /a? HTTP/1.1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "/a", req.Path())
	require.NotNil(t, req.Query())

	v, ok := req.Query().Get("")
	require.True(t, ok)
	s, _ := v.Single()
	assert.Equal(t, "", s)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  ParseError
	}{
		{name: "bad protocol", input: padded("GET / HTTP/1.0\r\n"), want: ErrInvalidProtocol},
		{name: "lowercase protocol", input: padded("GET / http/1.1\r\n"), want: ErrInvalidProtocol},
		{name: "bad method", input: padded("GE00asT / HTTP/1.1\r\n"), want: ErrInvalidMethod},
		{name: "lowercase method", input: padded("get / HTTP/1.1\r\n"), want: ErrInvalidMethod},
		{name: "missing target", input: []byte("GET HTTP/1.1\r\n"), want: ErrInvalidRequest},
		{name: "no delimiter", input: []byte("GET"), want: ErrInvalidRequest},
		{name: "empty", input: []byte{}, want: ErrInvalidRequest},
		{name: "protocol not terminated", input: []byte("GET / HTTP/1.1"), want: ErrInvalidRequest},
		{name: "invalid utf8", input: []byte{'G', 'E', 'T', ' ', 0xff, 0xfe, ' '}, want: ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Decode(tt.input)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecodeProtocolCheckedBeforeMethod(t *testing.T) {
	_, err := Decode(padded("FOO / HTTP/2\r\n"))
	assert.Equal(t, ErrInvalidProtocol, err)
}

func TestDecodeAllMethods(t *testing.T) {
	for _, m := range []Method{MethodGet, MethodDelete, MethodPost, MethodPut, MethodHead,
		MethodConnect, MethodOptions, MethodTrace, MethodPatch} {
		req, err := Decode([]byte(m.String() + " / HTTP/1.1\r\n"))
		require.NoError(t, err, m)
		assert.Equal(t, m, req.Method())
	}
}

func TestDecodeIgnoresTrailingData(t *testing.T) {
	req, err := Decode(padded("GET /x HTTP/1.1\r\n" + strings.Repeat("junk ", 20)))
	require.NoError(t, err)
	assert.Equal(t, "/x", req.Path())
}

func TestParseErrorText(t *testing.T) {
	assert.Equal(t, "Invalid Request", ErrInvalidRequest.Error())
	assert.Equal(t, "Invalid Encoding", ErrInvalidEncoding.Error())
	assert.Equal(t, "Invalid Protocol", ErrInvalidProtocol.Error())
	assert.Equal(t, "Invalid Method", ErrInvalidMethod.Error())

	pe, ok := AsParseError(ErrInvalidMethod)
	assert.True(t, ok)
	assert.Equal(t, "method", pe.Kind())

	_, ok = AsParseError(errors.New("other"))
	assert.False(t, ok)
}

func TestNextWord(t *testing.T) {
	word, rest, ok := nextWord("GET /a HTTP/1.1\r\n")
	assert.True(t, ok)
	assert.Equal(t, "GET", word)
	assert.Equal(t, "/a HTTP/1.1\r\n", rest)

	word, _, ok = nextWord("HTTP/1.1\r\n")
	assert.True(t, ok)
	assert.Equal(t, "HTTP/1.1", word)

	_, _, ok = nextWord("HTTP/1.1")
	assert.False(t, ok)
}
