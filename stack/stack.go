// Package stack provides an index-addressable, growable stack whose slots own their elements.
//
// Unlike a plain append-only stack, elements are addressed by externally assigned positions: Set writes
// to any index and fills the gap with empty slots, while Push and Pop work at the top. Every occupied slot
// holds exactly one element copied in through a Lifecycle, and every element leaves the stack either
// through Lifecycle.Free (overwrite, Delete) or by being handed to the caller (Pop).
package stack

import (
	"github.com/pkg/errors"
)

const (
	// DefaultCapacity is the capacity used when New receives a non-positive one.
	DefaultCapacity = 4

	maxIndexNil = -1
)

// Lifecycle is the capability a Stack uses to manage the elements it owns.
type Lifecycle[T any] interface {
	// Copy runs after the stack has raw-copied `src` into a fresh element `dst`. It deep-copies the
	// sub-resources `dst` must own. A non-nil error is reported as ErrCopyFailure.
	Copy(dst *T, src *T) error

	// Free releases the sub-resources of an element leaving the stack.
	Free(item *T)

	// Failure is notified of every error before the operation causing it returns.
	Failure(err error)
}

// Funcs adapts plain functions to Lifecycle. Nil functions are skipped.
type Funcs[T any] struct {
	CopyFunc    func(dst *T, src *T) error
	FreeFunc    func(item *T)
	FailureFunc func(err error)
}

func (f Funcs[T]) Copy(dst *T, src *T) error {
	if f.CopyFunc == nil {
		return nil
	}
	return f.CopyFunc(dst, src)
}

func (f Funcs[T]) Free(item *T) {
	if f.FreeFunc == nil {
		return
	}
	f.FreeFunc(item)
}

func (f Funcs[T]) Failure(err error) {
	if f.FailureFunc == nil {
		return
	}
	f.FailureFunc(err)
}

type Option func(c *config)

type config struct {
	limit int
}

// Limit bounds the capacity of a stack. Growing past `n` slots fails with ErrAllocationFailure.
// A non-positive `n` means no limit.
func Limit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

type Stack[T any] struct {
	buf      []*T
	len      int
	maxIndex int
	floor    int
	limit    int
	lc       Lifecycle[T]
	deleted  bool
}

// New creates an empty stack. When `lc` is nil, elements are raw-copied and nothing is released.
func New[T any](initialCapacity int, lc Lifecycle[T], opts ...Option) (*Stack[T], error) {
	if lc == nil {
		lc = Funcs[T]{}
	}
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if initialCapacity <= 0 {
		initialCapacity = DefaultCapacity
	}
	if c.limit > 0 && initialCapacity > c.limit {
		err := errors.Wrapf(ErrAllocationFailure, "new: initial capacity %v exceeds the limit %v", initialCapacity, c.limit)
		lc.Failure(err)
		return nil, err
	}

	return &Stack[T]{
		buf:      make([]*T, initialCapacity),
		len:      0,
		maxIndex: maxIndexNil,
		floor:    initialCapacity,
		limit:    c.limit,
		lc:       lc,
	}, nil
}

// Push appends `item` to the top of the stack and returns the element the stack now owns. A nil `item`
// reserves an empty slot; in that case Push returns nil.
func (s *Stack[T]) Push(item *T) (*T, error) {
	if err := s.check("push"); err != nil {
		return nil, err
	}

	if s.len >= len(s.buf) {
		err := s.grow()
		if err != nil {
			return nil, err
		}
	}
	if item != nil {
		e, err := s.copyIn(item, "push")
		if err != nil {
			return nil, err
		}
		s.buf[s.len] = e
	}
	s.maxIndex = s.len
	s.len++

	return s.buf[s.maxIndex], nil
}

// Pop detaches the top element and hands its ownership to the caller, so Lifecycle.Free is not called.
// Popping an empty slot returns nil.
func (s *Stack[T]) Pop() (*T, error) {
	if err := s.check("pop"); err != nil {
		return nil, err
	}

	if s.len <= 0 {
		return nil, s.fail(errors.Wrap(ErrUnderflow, "pop"))
	}

	e := s.buf[s.maxIndex]
	s.buf[s.maxIndex] = nil
	s.len = s.maxIndex
	s.maxIndex--

	s.shrink()

	return e, nil
}

// Get returns the element at `index`, or nil when the slot is empty.
func (s *Stack[T]) Get(index int) (*T, error) {
	if err := s.check("get"); err != nil {
		return nil, err
	}

	if index < 0 || index > s.maxIndex {
		return nil, s.fail(errors.Wrapf(ErrOutOfRange, "get: index %v, max index %v", index, s.maxIndex))
	}

	return s.buf[index], nil
}

// Set stores a copy of `item` at `index`, releasing the element previously stored there. When `index` lies
// beyond the top, the stack is extended with empty slots. A nil `item` just empties the slot.
func (s *Stack[T]) Set(index int, item *T) (*T, error) {
	if err := s.check("set"); err != nil {
		return nil, err
	}

	if index < 0 {
		return nil, s.fail(errors.Wrapf(ErrOutOfRange, "set: index %v", index))
	}

	n := s.len
	for index >= s.len {
		_, err := s.Push(nil)
		if err != nil {
			s.truncate(n)
			return nil, err
		}
	}

	if old := s.buf[index]; old != nil {
		s.buf[index] = nil
		s.lc.Free(old)
	}
	if item == nil {
		return nil, nil
	}

	e, err := s.copyIn(item, "set")
	if err != nil {
		return nil, err
	}
	s.buf[index] = e

	return e, nil
}

// Delete releases every element and the backing storage. Deleting a nil or already deleted stack is a no-op.
func (s *Stack[T]) Delete() {
	if s == nil || s.deleted {
		return
	}

	for i := 0; i < s.len; i++ {
		if s.buf[i] == nil {
			continue
		}
		e := s.buf[i]
		s.buf[i] = nil
		s.lc.Free(e)
	}
	s.buf = nil
	s.len = 0
	s.maxIndex = maxIndexNil
	s.deleted = true
}

// Size returns the number of slots, empty ones included.
func (s *Stack[T]) Size() int {
	if s == nil {
		return 0
	}
	return s.len
}

// MaxIndex returns the index of the top slot, or -1 when the stack is empty.
func (s *Stack[T]) MaxIndex() int {
	if s == nil {
		return maxIndexNil
	}
	return s.maxIndex
}

func (s *Stack[T]) IsEmpty() bool {
	return s.Size() == 0
}

// Cap returns the current capacity.
func (s *Stack[T]) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

func (s *Stack[T]) check(op string) error {
	if s == nil {
		return errors.Wrapf(ErrDeleted, "%v: nil stack", op)
	}
	if s.deleted {
		return s.fail(errors.Wrap(ErrDeleted, op))
	}
	return nil
}

func (s *Stack[T]) fail(err error) error {
	s.lc.Failure(err)
	return err
}

func (s *Stack[T]) copyIn(item *T, op string) (*T, error) {
	e := new(T)
	*e = *item
	err := s.lc.Copy(e, item)
	if err != nil {
		return nil, s.fail(errors.Wrapf(ErrCopyFailure, "%v: %v", op, err))
	}
	return e, nil
}

// truncate drops the empty slots at and above `n`.
func (s *Stack[T]) truncate(n int) {
	for i := n; i < s.len; i++ {
		s.buf[i] = nil
	}
	s.len = n
	s.maxIndex = n - 1
}

func (s *Stack[T]) grow() error {
	capacity := len(s.buf) * 2
	if s.limit > 0 && capacity > s.limit {
		if len(s.buf) >= s.limit {
			return s.fail(errors.Wrapf(ErrAllocationFailure, "grow: capacity %v reached the limit %v", len(s.buf), s.limit))
		}
		capacity = s.limit
	}

	buf := make([]*T, capacity)
	copy(buf, s.buf)
	s.buf = buf

	return nil
}

// shrink halves the capacity when at most half of it is in use. The capacity never falls below the initial one.
func (s *Stack[T]) shrink() {
	capacity := len(s.buf) / 2
	if s.len*2 > len(s.buf) || capacity < s.floor {
		return
	}

	buf := make([]*T, capacity)
	copy(buf, s.buf[:s.len])
	s.buf = buf
}
