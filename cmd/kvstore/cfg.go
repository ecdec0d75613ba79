package main

import (
	jsonvalidator "github.com/galdor/go-json-validator"
	"github.com/galdor/go-service/pkg/service"
)

const (
	DefaultQueueCapacity = 1000
	DefaultAPIAddress    = "localhost:8081"
)

type ServiceCfg struct {
	Service service.ServiceCfg `json:"service"`
	Store   StoreCfg           `json:"store"`
	API     APICfg             `json:"api"`
}

type StoreCfg struct {
	QueueCapacity int `json:"queueCapacity"`
	BTreeDegree   int `json:"bTreeDegree,omitempty"`
}

type APICfg struct {
	Address               string `json:"address"`
	LogSuccessfulRequests bool   `json:"logSuccessfulRequests,omitempty"`
}

func DefaultServiceCfg() ServiceCfg {
	return ServiceCfg{
		Store: StoreCfg{
			QueueCapacity: DefaultQueueCapacity,
		},

		API: APICfg{
			Address: DefaultAPIAddress,
		},
	}
}

func (cfg *ServiceCfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckObject("service", &cfg.Service)

	v.CheckObject("store", &cfg.Store)
	v.CheckObject("api", &cfg.API)
}

func (cfg *StoreCfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckIntMin("queueCapacity", cfg.QueueCapacity, 1)

	if cfg.BTreeDegree != 0 {
		v.CheckIntMin("bTreeDegree", cfg.BTreeDegree, 2)
	}
}

func (cfg *APICfg) ValidateJSON(v *jsonvalidator.Validator) {
	v.CheckStringNotEmpty("address", cfg.Address)
}
