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

package global

import (
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/caiflower/minihttpd/pkg/logger"
)

// DefaultResourceManger
// 用于守护进程的启动与退出，如HTTP Server、metrics server、crontab

type Resource interface {
	Close()
}

type DaemonResource interface {
	Resource
	Name() string
	Start() error
}

type packageResource struct {
	Resource
	DaemonResource
	order int
}

func (p *packageResource) Name() string {
	if p.DaemonResource != nil {
		return p.DaemonResource.Name()
	}
	return "packageResource"
}

func (p *packageResource) Close() {
	if p.DaemonResource != nil {
		p.DaemonResource.Close()
	} else {
		p.Resource.Close()
	}
}

func (p *packageResource) Start() error {
	if p.DaemonResource != nil {
		return p.DaemonResource.Start()
	}
	return nil
}

type resourceManger struct {
	lock     sync.Mutex
	packages []*packageResource
	started  []*packageResource
	running  bool
	exit     func(code int)
}

var DefaultResourceManger = newResourceManger()

func newResourceManger() *resourceManger {
	return &resourceManger{exit: os.Exit}
}

func (rm *resourceManger) Add(resource Resource) {
	rm.lock.Lock()
	defer rm.lock.Unlock()

	for _, v := range rm.packages {
		if v.Resource == resource {
			return
		}
	}
	rm.packages = append(rm.packages, &packageResource{Resource: resource, order: 1000000000})
}

// AddDaemonWithOrder registers a daemon. Higher orders start first.
func (rm *resourceManger) AddDaemonWithOrder(daemon DaemonResource, order int) {
	rm.lock.Lock()
	defer rm.lock.Unlock()

	for _, v := range rm.packages {
		if v.DaemonResource == daemon {
			return
		}
	}
	rm.packages = append(rm.packages, &packageResource{DaemonResource: daemon, order: order})
}

func (rm *resourceManger) AddDaemon(daemon DaemonResource) {
	rm.AddDaemonWithOrder(daemon, 100000)
}

// Signal starts every daemon, blocks until SIGHUP/SIGINT/SIGTERM/SIGQUIT and
// closes the resources. A daemon that fails to start aborts the process.
func (rm *resourceManger) Signal() {
	sign := make(chan os.Signal, 1)
	signal.Notify(sign, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sign)
	rm.wait(sign)
}

func (rm *resourceManger) wait(sign <-chan os.Signal) {
	if !rm.start() {
		return
	}

	s := <-sign
	logger.Info("Accept signal %s. The application is shutting down...", s)
	rm.destroy()
}

func (rm *resourceManger) start() bool {
	rm.lock.Lock()
	defer rm.lock.Unlock()
	if rm.running {
		return false
	}
	rm.running = true

	sort.SliceStable(rm.packages, func(i, j int) bool {
		return rm.packages[i].order > rm.packages[j].order
	})

	for _, resource := range rm.packages {
		if err := resource.Start(); err != nil {
			logger.Fatal("Signal failed. Start '%s' resource failed. Error: %s", resource.Name(), err.Error())
			rm.closeStarted()
			logger.DefaultLogger().Close()
			rm.exit(1)
			return false
		}
		rm.started = append(rm.started, resource)
	}
	return true
}

func (rm *resourceManger) destroy() {
	rm.lock.Lock()
	defer rm.lock.Unlock()
	rm.closeStarted()
	rm.running = false
}

// closeStarted closes in reverse start order.
func (rm *resourceManger) closeStarted() {
	for i := len(rm.started) - 1; i >= 0; i-- {
		rm.started[i].Close()
	}
	rm.started = nil
}
