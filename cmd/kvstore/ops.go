package main

import (
	"encoding/json"
	"fmt"

	"github.com/galdor/go-kvstore/pkg/store"
	"github.com/galdor/go-kvstore/pkg/value"
)

// RequestBody is the JSON form of a store request, e.g.:
//
//	{"op": "insert", "key": "hello", "value": {"type": "integer", "value": 5}}
//	{"op": "mutateGet", "key": "hello", "kind": "add",
//	 "operand": {"type": "integer", "value": 1}}
//	{"op": "keys"}
type RequestBody struct {
	Op      store.Op   `json:"op"`
	Key     *string    `json:"key,omitempty"`
	Value   value.JSON `json:"value"`
	Operand value.JSON `json:"operand"`
	Kind    string     `json:"kind,omitempty"`
}

type ReplyBody struct {
	Reply value.JSON `json:"reply"`
}

func DecodeRequest(data []byte) (store.Request, error) {
	var body RequestBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("cannot decode json data: %w", err)
	}

	return body.Request()
}

func (body *RequestBody) Request() (store.Request, error) {
	key := func() (string, error) {
		if body.Key == nil {
			return "", fmt.Errorf("missing key for op %q", body.Op)
		}

		return *body.Key, nil
	}

	switch body.Op {
	case store.OpInsert:
		k, err := key()
		if err != nil {
			return nil, err
		}

		if body.Value.Value == nil {
			return nil, fmt.Errorf("missing value")
		}

		return &store.InsertRequest{Key: k, Value: body.Value.Value}, nil

	case store.OpContains:
		k, err := key()
		if err != nil {
			return nil, err
		}

		return &store.ContainsRequest{Key: k}, nil

	case store.OpGet:
		k, err := key()
		if err != nil {
			return nil, err
		}

		return &store.GetRequest{Key: k}, nil

	case store.OpLen:
		return &store.LenRequest{}, nil

	case store.OpKeys:
		return &store.KeysRequest{}, nil

	case store.OpValues:
		return &store.ValuesRequest{}, nil

	case store.OpRemove:
		k, err := key()
		if err != nil {
			return nil, err
		}

		return &store.RemoveRequest{Key: k}, nil

	case store.OpRemoveEntry:
		k, err := key()
		if err != nil {
			return nil, err
		}

		return &store.RemoveEntryRequest{Key: k}, nil

	case store.OpMutateGet:
		k, err := key()
		if err != nil {
			return nil, err
		}

		if body.Operand.Value == nil {
			return nil, fmt.Errorf("missing operand")
		}

		kind, err := value.ParseMutationKind(body.Kind)
		if err != nil {
			return nil, err
		}

		return &store.MutateGetRequest{
			Key:     k,
			Operand: body.Operand.Value,
			Kind:    kind,
		}, nil

	case "":
		return nil, fmt.Errorf("missing op")

	default:
		return nil, fmt.Errorf("unknown op %q", body.Op)
	}
}
