package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/galdor/go-kvstore/pkg/value"
)

// Handle sends requests to a store. It is safe for concurrent use.
type Handle struct {
	requestChan chan<- envelope
	stopChan    chan struct{}
	doneChan    <-chan struct{}

	stopOnce sync.Once
}

// Close stops accepting requests and waits for the store to process the
// requests already queued. The content of the store is then discarded.
func (h *Handle) Close() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})

	<-h.doneChan
}

// Done returns a channel closed once the store has stopped.
func (h *Handle) Done() <-chan struct{} {
	return h.doneChan
}

// Do submits a request and waits for its reply. A nil value means that the
// requested entry was absent.
//
// If ctx is done before the reply is received, Do returns the context error;
// the request may still be processed.
func (h *Handle) Do(ctx context.Context, req Request) (value.Value, error) {
	select {
	case <-h.stopChan:
		return nil, fmt.Errorf("cannot submit %v: %w", req, errSubmissionClosed)
	default:
	}

	env := envelope{
		ctx:       ctx,
		req:       req,
		replyChan: make(chan reply, 1),
	}

	select {
	case h.requestChan <- env:
	case <-h.stopChan:
		return nil, fmt.Errorf("cannot submit %v: %w", req, errSubmissionClosed)
	case <-ctx.Done():
		return nil, fmt.Errorf("cannot submit %v: %w", req, ctx.Err())
	}

	select {
	case r := <-env.replyChan:
		return r.val, r.err

	case <-h.doneChan:
		// The store may have replied just before stopping
		select {
		case r := <-env.replyChan:
			return r.val, r.err
		default:
			return nil, fmt.Errorf("cannot receive reply to %v: %w",
				req, errDeliveryClosed)
		}

	case <-ctx.Done():
		return nil, fmt.Errorf("cannot receive reply to %v: %w", req, ctx.Err())
	}
}

// Insert stores a value, converting it with value.From, and returns the
// value previously stored for the key if there was one.
func (h *Handle) Insert(ctx context.Context, key string, v interface{}) (value.Value, error) {
	val, err := value.From(v)
	if err != nil {
		return nil, fmt.Errorf("cannot convert value: %w", err)
	}

	return h.Do(ctx, &InsertRequest{Key: key, Value: val})
}

func (h *Handle) Contains(ctx context.Context, key string) (bool, error) {
	res, err := h.Do(ctx, &ContainsRequest{Key: key})
	if err != nil {
		return false, err
	}

	return replyAs[bool](res)
}

func (h *Handle) Get(ctx context.Context, key string) (value.Value, error) {
	return h.Do(ctx, &GetRequest{Key: key})
}

func (h *Handle) Len(ctx context.Context) (int, error) {
	res, err := h.Do(ctx, &LenRequest{})
	if err != nil {
		return 0, err
	}

	n, err := replyAs[uint64](res)
	return int(n), err
}

// Keys returns all keys in ascending order.
func (h *Handle) Keys(ctx context.Context) ([]string, error) {
	res, err := h.Do(ctx, &KeysRequest{})
	if err != nil {
		return nil, err
	}

	return replyAs[[]string](res)
}

// Values returns all values ordered by key.
func (h *Handle) Values(ctx context.Context) ([]value.Value, error) {
	res, err := h.Do(ctx, &ValuesRequest{})
	if err != nil {
		return nil, err
	}

	return replyAs[[]value.Value](res)
}

func (h *Handle) Remove(ctx context.Context, key string) (value.Value, error) {
	return h.Do(ctx, &RemoveRequest{Key: key})
}

// RemoveEntry removes an entry and returns it as a value.KeyValue, or nil if
// the key was absent.
func (h *Handle) RemoveEntry(ctx context.Context, key string) (value.Value, error) {
	return h.Do(ctx, &RemoveEntryRequest{Key: key})
}

// MutateGet applies a mutation to the value stored for a key. It returns
// false if the key is absent or if the mutation is not supported for the
// stored value and the operand.
func (h *Handle) MutateGet(ctx context.Context, key string, operand interface{}, kind value.MutationKind) (bool, error) {
	val, err := value.From(operand)
	if err != nil {
		return false, fmt.Errorf("cannot convert operand: %w", err)
	}

	res, err := h.Do(ctx, &MutateGetRequest{Key: key, Operand: val, Kind: kind})
	if err != nil {
		return false, err
	}

	return replyAs[bool](res)
}

func replyAs[T any](res value.Value) (T, error) {
	v, err := value.To[T](res)
	if err != nil {
		return v, fmt.Errorf("invalid reply: %w", err)
	}

	return v, nil
}
