package main

import (
	"errors"
	"io"

	"github.com/galdor/go-kvstore/pkg/store"
	"github.com/galdor/go-kvstore/pkg/value"
	"github.com/galdor/go-service/pkg/shttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIServer struct {
	Service *Service
}

type StoreListing struct {
	Length int      `json:"length"`
	Keys   []string `json:"keys"`
}

type InsertReply struct {
	Previous value.JSON `json:"previous"`
}

type EntryReply struct {
	Value value.JSON `json:"value"`
}

type MutationBody struct {
	Kind    string     `json:"kind"`
	Operand value.JSON `json:"operand"`
}

type MutationReply struct {
	Applied bool `json:"applied"`
}

func NewAPIServer(s *Service) (*APIServer, error) {
	api := APIServer{
		Service: s,
	}

	return &api, nil
}

func (api *APIServer) Init() error {
	api.initRoutes()
	return nil
}

func (api *APIServer) initRoutes() {
	api.Route("/store", "GET", api.hStoreGET)
	api.Route("/store/:key", "GET", api.hStoreKeyGET)
	api.Route("/store/:key", "PUT", api.hStoreKeyPUT)
	api.Route("/store/:key", "DELETE", api.hStoreKeyDELETE)
	api.Route("/store/:key/mutation", "POST", api.hStoreKeyMutationPOST)

	api.Route("/values", "GET", api.hValuesGET)
	api.Route("/requests", "POST", api.hRequestsPOST)

	api.Route("/metrics", "GET", api.hMetricsGET)
}

func (api *APIServer) Route(pathPattern, method string, routeFunc shttp.RouteFunc) {
	s := api.Service.Service.HTTPServer("api")
	s.Route(pathPattern, method, routeFunc)
}

func (api *APIServer) store() *store.Handle {
	return api.Service.store
}

func (api *APIServer) hStoreGET(h *shttp.Handler) {
	ctx := h.Request.Context()

	length, err := api.store().Len(ctx)
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	keys, err := api.store().Keys(ctx)
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	h.ReplyJSON(200, StoreListing{Length: length, Keys: keys})
}

func (api *APIServer) hStoreKeyGET(h *shttp.Handler) {
	key := h.PathVariable("key")

	v, err := api.store().Get(h.Request.Context(), key)
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	if v == nil {
		h.ReplyError(404, "unknown_key", "unknown key %q", key)
		return
	}

	h.ReplyJSON(200, value.JSON{Value: v})
}

func (api *APIServer) hStoreKeyPUT(h *shttp.Handler) {
	key := h.PathVariable("key")

	data, err := io.ReadAll(h.Request.Body)
	if err != nil {
		h.ReplyError(400, "invalid_request_body",
			"cannot read request body: %v", err)
		return
	}

	v, err := value.Decode(data)
	if err != nil {
		h.ReplyError(400, "invalid_request_body", "invalid value: %v", err)
		return
	} else if v == nil {
		h.ReplyError(400, "invalid_request_body", "missing value")
		return
	}

	previous, err := api.store().Do(h.Request.Context(),
		&store.InsertRequest{Key: key, Value: v})
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	h.ReplyJSON(200, InsertReply{Previous: value.JSON{Value: previous}})
}

func (api *APIServer) hStoreKeyDELETE(h *shttp.Handler) {
	key := h.PathVariable("key")

	var req store.Request = &store.RemoveRequest{Key: key}
	if h.Request.URL.Query().Get("entry") == "true" {
		req = &store.RemoveEntryRequest{Key: key}
	}

	v, err := api.store().Do(h.Request.Context(), req)
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	if v == nil {
		h.ReplyError(404, "unknown_key", "unknown key %q", key)
		return
	}

	h.ReplyJSON(200, EntryReply{Value: value.JSON{Value: v}})
}

func (api *APIServer) hStoreKeyMutationPOST(h *shttp.Handler) {
	key := h.PathVariable("key")

	var body MutationBody
	if err := h.JSONRequestData(&body); err != nil {
		return
	}

	kind, err := value.ParseMutationKind(body.Kind)
	if err != nil {
		h.ReplyError(400, "invalid_mutation_kind", "%v", err)
		return
	}

	if body.Operand.Value == nil {
		h.ReplyError(400, "invalid_request_body", "missing operand")
		return
	}

	res, err := api.store().Do(h.Request.Context(), &store.MutateGetRequest{
		Key:     key,
		Operand: body.Operand.Value,
		Kind:    kind,
	})
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	applied, err := value.To[bool](res)
	if err != nil {
		h.ReplyInternalError(500, "invalid store reply: %v", err)
		return
	}

	h.ReplyJSON(200, MutationReply{Applied: applied})
}

func (api *APIServer) hValuesGET(h *shttp.Handler) {
	values, err := api.store().Values(h.Request.Context())
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	h.ReplyJSON(200, value.JSON{Value: value.List(values)})
}

func (api *APIServer) hRequestsPOST(h *shttp.Handler) {
	data, err := io.ReadAll(h.Request.Body)
	if err != nil {
		h.ReplyError(400, "invalid_request_body",
			"cannot read request body: %v", err)
		return
	}

	req, err := DecodeRequest(data)
	if err != nil {
		h.ReplyError(400, "invalid_request", "%v", err)
		return
	}

	res, err := api.store().Do(h.Request.Context(), req)
	if err != nil {
		api.replyStoreError(h, err)
		return
	}

	h.ReplyJSON(200, ReplyBody{Reply: value.JSON{Value: res}})
}

func (api *APIServer) hMetricsGET(h *shttp.Handler) {
	handler := promhttp.HandlerFor(api.Service.registry, promhttp.HandlerOpts{})
	handler.ServeHTTP(h.ResponseWriter, h.Request)
}

func (api *APIServer) replyStoreError(h *shttp.Handler, err error) {
	if errors.Is(err, store.ErrClosed) {
		h.ReplyError(503, "store_unavailable", "%v", err)
		return
	}

	h.ReplyInternalError(500, "store error: %v", err)
}
