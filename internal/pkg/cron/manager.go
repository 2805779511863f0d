package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type entry struct {
	name string
	spec string
	job  cron.Job
}

// Manager 定时任务注册与启停，表达式带秒字段
type Manager struct {
	engine  *cron.Cron
	entries []entry
}

func NewCronManager() *Manager {
	return &Manager{
		engine: cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Add 登记任务，RegisterJobs 时才校验表达式
func (s *Manager) Add(name, spec string, job cron.Job) {
	s.entries = append(s.entries, entry{name: name, spec: spec, job: job})
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	for _, e := range s.entries {
		if _, err := s.engine.AddJob(e.spec, e.job); err != nil {
			log.Error("register cron job failed", "job", e.name, "spec", e.spec, "err", err)
			return err
		}
		log.Info("cron job registered", "job", e.name, "spec", e.spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "jobs", len(s.entries))
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
