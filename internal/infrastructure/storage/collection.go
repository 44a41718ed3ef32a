package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// errSkip lo devuelve una mutación que no cambió nada: no se persiste y no es error.
var errSkip = errors.New("sin cambios")

// docs es lo que un repositorio necesita de su colección: leer y reescribir la lista.
// collection la persiste al instante; staged la acumula dentro de una transacción.
type docs[T any] interface {
	read(fn func(items []T))
	write(ctx context.Context, fn func(items []T) ([]T, error)) error
}

// collection lista de documentos guardada bajo una clave.
type collection[T any] struct {
	mu    sync.RWMutex
	kv    KV
	key   string
	items []T
}

func loadCollection[T any](ctx context.Context, kv KV, key string) (*collection[T], error) {
	c := &collection[T]{kv: kv, key: key}
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", key, err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.items); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", key, err)
		}
	}
	return c, nil
}

func (c *collection[T]) read(fn func(items []T)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.items)
}

// write aplica fn sobre una copia, persiste el resultado y solo entonces lo publica.
func (c *collection[T]) write(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(slices.Clone(c.items))
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}
	raw, err := encodeList(next)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", c.key, err)
	}
	if err := c.kv.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("guardar %s: %w", c.key, err)
	}
	c.items = next
	return nil
}

// staged copia de trabajo de una colección dentro de TxRunner.Run.
type staged[T any] struct {
	items []T
	dirty bool
}

func (s *staged[T]) read(fn func(items []T)) { fn(s.items) }

func (s *staged[T]) write(_ context.Context, fn func(items []T) ([]T, error)) error {
	next, err := fn(slices.Clone(s.items))
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}
	s.items = next
	s.dirty = true
	return nil
}

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// document valor único (objeto, mapa o texto) guardado bajo una clave.
type document[T any] struct {
	mu    sync.RWMutex
	kv    KV
	key   string
	value *T
}

func loadDocument[T any](ctx context.Context, kv KV, key string) (*document[T], error) {
	d := &document[T]{kv: kv, key: key}
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", key, err)
	}
	if ok && len(raw) > 0 {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", key, err)
		}
		d.value = &v
	}
	return d, nil
}

// get devuelve una copia superficial del valor, o nil si no existe.
func (d *document[T]) get() *T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.value == nil {
		return nil
	}
	v := *d.value
	return &v
}

func (d *document[T]) set(ctx context.Context, v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", d.key, err)
	}
	if err := d.kv.Put(ctx, d.key, raw); err != nil {
		return fmt.Errorf("guardar %s: %w", d.key, err)
	}
	d.value = &v
	return nil
}

func (d *document[T]) update(ctx context.Context, fn func(cur *T) (T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var cur *T
	if d.value != nil {
		c := *d.value
		cur = &c
	}
	next, err := fn(cur)
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", d.key, err)
	}
	if err := d.kv.Put(ctx, d.key, raw); err != nil {
		return fmt.Errorf("guardar %s: %w", d.key, err)
	}
	d.value = &next
	return nil
}

func (d *document[T]) clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.kv.Delete(ctx, d.key); err != nil {
		return fmt.Errorf("borrar %s: %w", d.key, err)
	}
	d.value = nil
	return nil
}
