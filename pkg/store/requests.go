package store

import (
	"fmt"

	"github.com/galdor/go-kvstore/pkg/value"
)

type Op string

const (
	OpInsert      Op = "insert"
	OpContains    Op = "contains"
	OpGet         Op = "get"
	OpLen         Op = "len"
	OpKeys        Op = "keys"
	OpValues      Op = "values"
	OpRemove      Op = "remove"
	OpRemoveEntry Op = "removeEntry"
	OpMutateGet   Op = "mutateGet"
)

var Ops = []Op{
	OpInsert,
	OpContains,
	OpGet,
	OpLen,
	OpKeys,
	OpValues,
	OpRemove,
	OpRemoveEntry,
	OpMutateGet,
}

// Request is an operation processed by the store. Only the request types of
// this package implement it.
type Request interface {
	Op() Op

	fmt.Stringer

	request() // sealed
}

type InsertRequest struct {
	Key   string
	Value value.Value
}

type ContainsRequest struct {
	Key string
}

type GetRequest struct {
	Key string
}

type LenRequest struct{}

type KeysRequest struct{}

type ValuesRequest struct{}

type RemoveRequest struct {
	Key string
}

type RemoveEntryRequest struct {
	Key string
}

type MutateGetRequest struct {
	Key     string
	Operand value.Value
	Kind    value.MutationKind
}

func (*InsertRequest) request()      {}
func (*ContainsRequest) request()    {}
func (*GetRequest) request()         {}
func (*LenRequest) request()         {}
func (*KeysRequest) request()        {}
func (*ValuesRequest) request()      {}
func (*RemoveRequest) request()      {}
func (*RemoveEntryRequest) request() {}
func (*MutateGetRequest) request()   {}

func (*InsertRequest) Op() Op      { return OpInsert }
func (*ContainsRequest) Op() Op    { return OpContains }
func (*GetRequest) Op() Op         { return OpGet }
func (*LenRequest) Op() Op         { return OpLen }
func (*KeysRequest) Op() Op        { return OpKeys }
func (*ValuesRequest) Op() Op      { return OpValues }
func (*RemoveRequest) Op() Op      { return OpRemove }
func (*RemoveEntryRequest) Op() Op { return OpRemoveEntry }
func (*MutateGetRequest) Op() Op   { return OpMutateGet }

func (req *InsertRequest) String() string {
	return fmt.Sprintf("Insert{key: %q, value: %s}",
		req.Key, value.Format(req.Value))
}

func (req *ContainsRequest) String() string {
	return fmt.Sprintf("Contains{key: %q}", req.Key)
}

func (req *GetRequest) String() string {
	return fmt.Sprintf("Get{key: %q}", req.Key)
}

func (req *LenRequest) String() string {
	return "Len{}"
}

func (req *KeysRequest) String() string {
	return "Keys{}"
}

func (req *ValuesRequest) String() string {
	return "Values{}"
}

func (req *RemoveRequest) String() string {
	return fmt.Sprintf("Remove{key: %q}", req.Key)
}

func (req *RemoveEntryRequest) String() string {
	return fmt.Sprintf("RemoveEntry{key: %q}", req.Key)
}

func (req *MutateGetRequest) String() string {
	return fmt.Sprintf("MutateGet{key: %q, operand: %s, kind: %s}",
		req.Key, value.Format(req.Operand), req.Kind)
}
