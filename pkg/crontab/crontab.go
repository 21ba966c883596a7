package crontab

import (
	"time"

	golocalv1 "github.com/caiflower/minihttpd/pkg/golocal/v1"
	"github.com/caiflower/minihttpd/pkg/e"
	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/caiflower/minihttpd/pkg/tools"
	"github.com/robfig/cron/v3"
)

var DefaultCronManger = NewCronTabManger("DefaultCronManger")

// CronManger wraps a robfig cron scheduler. Specs accept an optional seconds
// field and descriptors such as "@every 1m".
type CronManger struct {
	name string
	cron *cron.Cron
}

func NewCronTabManger(name string) *CronManger {
	return &CronManger{name: name, cron: cron.New(cron.WithSeconds())}
}

func (c *CronManger) Name() string {
	return "CRONTAB:" + c.name
}

func (c *CronManger) GetCron() *cron.Cron {
	return c.cron
}

func (c *CronManger) Start() error {
	c.cron.Start()
	return nil
}

// Close stops scheduling and waits for running jobs.
func (c *CronManger) Close() {
	<-c.cron.Stop().Done()
}

func (c *CronManger) AddCronJob(spec string, job cron.Job) (cron.EntryID, error) {
	eid, err := c.cron.AddJob(spec, job)
	if err != nil {
		logger.Error("[Crontab] Add crontab failed. spec=%s. err=%v", spec, err)
		return eid, err
	}
	logger.Info("[Crontab] Add crontab. spec=%s. jobId=%v. nextTime=%s", spec, eid, nextTime(c.cron.Entry(eid)))
	return eid, nil
}

// AddFunc schedules fn with its own trace id per run. A panic in fn is logged
// and does not stop later runs.
func (c *CronManger) AddFunc(spec string, name string, fn func()) (cron.EntryID, error) {
	return c.AddCronJob(spec, cron.FuncJob(func() {
		golocalv1.PutTraceID(tools.UUID())
		defer golocalv1.Clean()
		defer e.OnError("[Crontab] " + name)
		fn()
	}))
}

func (c *CronManger) RemoveCronJob(id cron.EntryID) {
	c.cron.Remove(id)
}

func nextTime(entry cron.Entry) string {
	if entry.Next.IsZero() {
		return "-"
	}
	return entry.Next.Format(time.DateTime)
}

func AddFunc(spec string, name string, fn func()) (cron.EntryID, error) {
	return DefaultCronManger.AddFunc(spec, name, fn)
}

func RemoveCronJob(id cron.EntryID) {
	DefaultCronManger.RemoveCronJob(id)
}
