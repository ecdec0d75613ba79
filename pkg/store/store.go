// Package store implements an ordered key-value store owned by a single
// goroutine. Callers never access the map directly: every operation is a
// request sent on a bounded queue, processed in arrival order, and answered
// on a reply channel private to the request.
package store

import (
	"context"
	"fmt"

	"github.com/galdor/go-kvstore/pkg/value"
	"github.com/google/btree"
)

const DefaultBTreeDegree = 32

type Cfg struct {
	QueueCapacity int

	Logger  Logger
	Metrics *Metrics

	BTreeDegree int
}

type entry struct {
	key string
	val value.Value
}

func entryLess(a, b entry) bool {
	return a.key < b.key
}

type reply struct {
	val value.Value
	err error
}

type envelope struct {
	ctx       context.Context
	req       Request
	replyChan chan reply
}

type actor struct {
	Cfg     Cfg
	Log     Logger
	Metrics *Metrics

	entries *btree.BTreeG[entry]

	requestChan <-chan envelope
	stopChan    <-chan struct{}
	doneChan    chan<- struct{}
}

// Start creates an empty store and the goroutine which owns it, and returns
// the handle used to send requests to it.
func Start(cfg Cfg) (*Handle, error) {
	if cfg.QueueCapacity <= 0 {
		return nil, fmt.Errorf("%w (capacity: %d)",
			ErrInvalidQueueCapacity, cfg.QueueCapacity)
	}

	if cfg.Logger == nil {
		return nil, ErrMissingLogger
	}

	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}

	if cfg.BTreeDegree == 0 {
		cfg.BTreeDegree = DefaultBTreeDegree
	} else if cfg.BTreeDegree < 2 {
		return nil, fmt.Errorf("%w (degree: %d)",
			ErrInvalidBTreeDegree, cfg.BTreeDegree)
	}

	requestChan := make(chan envelope, cfg.QueueCapacity)
	stopChan := make(chan struct{})
	doneChan := make(chan struct{})

	a := &actor{
		Cfg:     cfg,
		Log:     cfg.Logger,
		Metrics: cfg.Metrics,

		entries: btree.NewG[entry](cfg.BTreeDegree, entryLess),

		requestChan: requestChan,
		stopChan:    stopChan,
		doneChan:    doneChan,
	}

	h := &Handle{
		requestChan: requestChan,
		stopChan:    stopChan,
		doneChan:    doneChan,
	}

	go a.main()

	return h, nil
}

func (a *actor) main() {
	defer close(a.doneChan)

	a.Log.Debug(1, "started (queue capacity: %d)", a.Cfg.QueueCapacity)

	for {
		select {
		case <-a.stopChan:
			a.drain()
			a.shutdown()
			return

		case env := <-a.requestChan:
			a.onRequest(env)
		}
	}
}

// drain processes the requests which were queued before the store was
// closed.
func (a *actor) drain() {
	for {
		select {
		case env := <-a.requestChan:
			a.onRequest(env)
		default:
			return
		}
	}
}

func (a *actor) shutdown() {
	a.Log.Debug(1, "stopping, discarding %d entries", a.entries.Len())

	a.entries.Clear(false)
	a.Metrics.Entries.Set(0)
	a.Metrics.QueueLength.Set(0)
}

func (a *actor) onRequest(env envelope) {
	a.Log.Debug(2, "processing %v", env.req)

	val, err := a.execute(env.req)

	a.Metrics.Entries.Set(float64(a.entries.Len()))
	a.Metrics.QueueLength.Set(float64(len(a.requestChan)))

	a.deliver(env, reply{val: val, err: err})
}

// deliver sends a reply to the caller unless it has already given up on it.
// Reply channels have room for exactly one reply so delivery never blocks.
func (a *actor) deliver(env envelope, r reply) {
	if err := env.ctx.Err(); err != nil {
		a.Log.Error("cannot deliver reply to %v: %v", env.req, err)
		a.Metrics.DroppedReplies.Inc()
		return
	}

	env.replyChan <- r
}

func (a *actor) execute(req Request) (val value.Value, err error) {
	defer func() {
		if v := recover(); v != nil {
			msg := recoverValueString(v)
			trace := stackTrace(10)
			a.Log.Error("panic while processing %v: %s\n%s", req, msg, trace)

			a.Metrics.Panics.Inc()

			val = nil
			err = fmt.Errorf("panic: %s", msg)
		}
	}()

	a.Metrics.Requests.WithLabelValues(string(req.Op())).Inc()

	switch r := req.(type) {
	case *InsertRequest:
		return a.insert(r.Key, r.Value), nil

	case *ContainsRequest:
		return value.Boolean(a.entries.Has(entry{key: r.Key})), nil

	case *GetRequest:
		e, found := a.entries.Get(entry{key: r.Key})
		if !found {
			return nil, nil
		}
		return value.Clone(e.val), nil

	case *LenRequest:
		return value.UInteger(a.entries.Len()), nil

	case *KeysRequest:
		keys := make(value.List, 0, a.entries.Len())
		a.entries.Ascend(func(e entry) bool {
			keys = append(keys, value.String(e.key))
			return true
		})
		return keys, nil

	case *ValuesRequest:
		values := make(value.List, 0, a.entries.Len())
		a.entries.Ascend(func(e entry) bool {
			values = append(values, value.Clone(e.val))
			return true
		})
		return values, nil

	case *RemoveRequest:
		e, found := a.entries.Delete(entry{key: r.Key})
		if !found {
			return nil, nil
		}
		return e.val, nil

	case *RemoveEntryRequest:
		e, found := a.entries.Delete(entry{key: r.Key})
		if !found {
			return nil, nil
		}
		return value.KeyValue{Key: e.key, Value: e.val}, nil

	case *MutateGetRequest:
		return value.Boolean(a.mutateGet(r.Key, r.Operand, r.Kind)), nil

	default:
		return nil, fmt.Errorf("unhandled request %v", req)
	}
}

func (a *actor) insert(key string, val value.Value) value.Value {
	if val == nil {
		val = value.Nil{}
	}

	previous, found := a.entries.ReplaceOrInsert(entry{
		key: key,
		val: value.Clone(val),
	})
	if !found {
		return nil
	}

	return previous.val
}

func (a *actor) mutateGet(key string, operand value.Value, kind value.MutationKind) bool {
	e, found := a.entries.Get(entry{key: key})
	if !found {
		return false
	}

	applied := value.Apply(&e.val, value.Clone(operand), kind)

	a.entries.ReplaceOrInsert(e)

	return applied
}
