package kv

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/dori/taskdeck/internal/logger"
	"go.uber.org/zap"
)

// Adapter stores JSON values over a Backend. No method returns an error:
// failures are logged and turned into the zero/default result, so a failed
// read looks exactly like a missing key.
type Adapter struct {
	backend Backend
	log     *zap.Logger
}

// Pair is one MultiGet result; Value is the raw JSON, nil when absent
type Pair struct {
	Key   string
	Value *string
}

// NewAdapter wraps backend. A nil logger discards failures silently.
func NewAdapter(backend Backend, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{backend: backend, log: log}
}

// Get returns the value stored under key decoded as T, or def when the key
// is absent, unparsable or the read failed.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) T {
	var v T
	if !a.GetInto(ctx, key, &v) {
		return def
	}
	return v
}

// GetInto decodes the value under key into dest and reports whether it did.
// dest is left untouched unless decoding succeeds.
func (a *Adapter) GetInto(ctx context.Context, key string, dest any) bool {
	log := logger.WithOpID(ctx, a.log).With(zap.String("key", key))

	raw, ok, err := a.backend.Read(ctx, key)
	if err != nil {
		log.Error("error getting item from storage", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	// decode into a scratch value of the same type so a half-parsed
	// payload never leaks into dest
	scratch, err := decode(raw, dest)
	if err != nil {
		log.Error("error decoding item from storage", zap.Error(err))
		return false
	}
	assign(dest, scratch)
	return true
}

// Set stores value under key and acknowledges whether the write landed
func (a *Adapter) Set(ctx context.Context, key string, value any) bool {
	log := logger.WithOpID(ctx, a.log).With(zap.String("key", key))

	data, err := json.Marshal(value)
	if err != nil {
		log.Error("error encoding item for storage", zap.Error(err))
		return false
	}
	if err := a.backend.Write(ctx, key, data); err != nil {
		log.Error("error setting item in storage", zap.Error(err))
		return false
	}
	log.Debug("stored item", zap.Int("bytes", len(data)))
	return true
}

// Remove deletes key; removing an absent key succeeds
func (a *Adapter) Remove(ctx context.Context, key string) bool {
	if err := a.backend.Delete(ctx, key); err != nil {
		logger.WithOpID(ctx, a.log).Error("error removing item from storage",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Clear removes every key
func (a *Adapter) Clear(ctx context.Context) bool {
	if err := a.backend.Clear(ctx); err != nil {
		logger.WithOpID(ctx, a.log).Error("error clearing storage", zap.Error(err))
		return false
	}
	return true
}

// Keys lists all stored keys, empty on failure
func (a *Adapter) Keys(ctx context.Context) []string {
	keys, err := a.backend.Keys(ctx)
	if err != nil {
		logger.WithOpID(ctx, a.log).Error("error getting all keys from storage", zap.Error(err))
		return []string{}
	}
	return keys
}

// MultiGet returns the raw JSON for each key in order. Any backend failure
// yields an empty result, matching the all-or-nothing batch read.
func (a *Adapter) MultiGet(ctx context.Context, keys []string) []Pair {
	pairs := make([]Pair, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := a.backend.Read(ctx, key)
		if err != nil {
			logger.WithOpID(ctx, a.log).Error("error with multiGet from storage",
				zap.String("key", key), zap.Error(err))
			return []Pair{}
		}
		p := Pair{Key: key}
		if ok {
			s := string(raw)
			p.Value = &s
		}
		pairs = append(pairs, p)
	}
	return pairs
}

var errBadDest = errors.New("destination must be a non-nil pointer")

func decode(raw []byte, dest any) (reflect.Value, error) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, errBadDest
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(raw, scratch.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return scratch.Elem(), nil
}

func assign(dest any, v reflect.Value) {
	reflect.ValueOf(dest).Elem().Set(v)
}
