package main

import (
	"fmt"

	"github.com/galdor/go-kvstore/pkg/store"
	"github.com/galdor/go-log"
	"github.com/galdor/go-program"
	"github.com/galdor/go-service/pkg/service"
	"github.com/galdor/go-service/pkg/shttp"
	"github.com/prometheus/client_golang/prometheus"
)

type Service struct {
	Cfg     ServiceCfg
	Program *program.Program
	Service *service.Service
	Log     *log.Logger

	store     *store.Handle
	metrics   *store.Metrics
	registry  *prometheus.Registry
	apiServer *APIServer
}

func NewService() *Service {
	return &Service{
		Cfg: DefaultServiceCfg(),
	}
}

func (s *Service) InitProgram(p *program.Program) {
	s.Program = p
}

func (s *Service) DefaultCfg() interface{} {
	return &s.Cfg
}

func (s *Service) ValidateCfg() error {
	return nil
}

func (s *Service) ServiceCfg() *service.ServiceCfg {
	cfg := &s.Cfg.Service

	if cfg.HTTPServers == nil {
		cfg.HTTPServers = make(map[string]*shttp.ServerCfg)
	}

	cfg.HTTPServers["api"] = &shttp.ServerCfg{
		Address:               s.Cfg.API.Address,
		LogSuccessfulRequests: s.Cfg.API.LogSuccessfulRequests,
		ErrorHandler:          shttp.JSONErrorHandler,
	}

	return cfg
}

func (s *Service) Init(ss *service.Service) error {
	s.Service = ss
	s.Log = ss.Log

	if err := s.initMetrics(); err != nil {
		return err
	}

	if err := s.initAPIServer(); err != nil {
		return err
	}

	return nil
}

func (s *Service) initMetrics() error {
	s.metrics = store.NewMetrics()
	s.registry = prometheus.NewRegistry()

	if err := s.metrics.Register(s.registry); err != nil {
		return fmt.Errorf("cannot register store metrics: %w", err)
	}

	return nil
}

func (s *Service) initAPIServer() error {
	api, err := NewAPIServer(s)
	if err != nil {
		return fmt.Errorf("cannot create api server: %w", err)
	}

	s.apiServer = api

	return nil
}

func (s *Service) Start(ss *service.Service) error {
	if err := s.startStore(); err != nil {
		return fmt.Errorf("cannot start store: %w", err)
	}

	if err := s.apiServer.Init(); err != nil {
		return fmt.Errorf("cannot initialize api server: %w", err)
	}

	return nil
}

func (s *Service) startStore() error {
	logger := s.Log.Child("store", log.Data{
		"queueCapacity": s.Cfg.Store.QueueCapacity,
	})

	storeCfg := store.Cfg{
		QueueCapacity: s.Cfg.Store.QueueCapacity,

		Logger:  logger,
		Metrics: s.metrics,

		BTreeDegree: s.Cfg.Store.BTreeDegree,
	}

	handle, err := store.Start(storeCfg)
	if err != nil {
		return err
	}

	s.store = handle

	return nil
}

func (s *Service) Stop(ss *service.Service) {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *Service) Terminate(ss *service.Service) {
}
