//go:build go1.4
// +build go1.4

package v1

import (
	"sync"

	"github.com/modern-go/gls"
)

const (
	RequestID  = "X-Request-ID"
	RemoteAddr = "Remote-Addr"
)

// localMap holds one *sync.Map per goroutine id. Pool workers are long-lived,
// so every job must call Clean before it returns.
var localMap sync.Map

func goID() int64 {
	return gls.GoID()
}

func current() *sync.Map {
	id := goID()
	if value, ok := localMap.Load(id); ok {
		return value.(*sync.Map)
	}
	m := &sync.Map{}
	localMap.Store(id, m)
	return m
}

func PutTraceID(value string) {
	current().Store(RequestID, value)
}

func GetTraceID() string {
	if v, ok := current().Load(RequestID); ok {
		return v.(string)
	}
	return ""
}

func PutRemoteAddr(value string) {
	current().Store(RemoteAddr, value)
}

func GetRemoteAddr() string {
	if v, ok := current().Load(RemoteAddr); ok {
		return v.(string)
	}
	return ""
}

func Put(key string, value interface{}) {
	current().Store(key, value)
}

func Get(key string) interface{} {
	if v, ok := current().Load(key); ok {
		return v
	}
	return nil
}

// Clean drops everything stored for the calling goroutine.
func Clean() {
	localMap.Delete(goID())
}
