package state

import (
	"slices"

	"social/util/model"
)

// Request identifica una petición de página. Gen cambia con cada Reset, así
// las respuestas de una carga anterior se descartan
type Request struct {
	Gen  int
	Page int
}

// Pager acumula páginas de items con clave K. Si la respuesta trae meta se usa
// total_pages para saber si hay más; si no, una página llena indica que puede haber más
type Pager[K comparable, T any] struct {
	PageSize int

	key     func(T) K
	items   []T
	seen    map[K]struct{}
	loaded  map[int]struct{}
	page    int
	gen     int
	loading bool
	pending Request
	more    bool
}

func NewPager[K comparable, T any](pageSize int, key func(T) K) *Pager[K, T] {
	p := &Pager[K, T]{PageSize: pageSize, key: key}
	p.clear()
	return p
}

func (p *Pager[K, T]) clear() {
	p.items = nil
	p.seen = make(map[K]struct{})
	p.loaded = make(map[int]struct{})
	p.page = 0
	p.more = true
}

// Reset empieza una carga nueva desde la página 1. Los items actuales se
// mantienen hasta que llegue la respuesta
func (p *Pager[K, T]) Reset() Request {
	p.gen++
	p.loading = true
	p.pending = Request{Gen: p.gen, Page: 1}
	return p.pending
}

// Next pide la siguiente página si no hay otra carga en curso y quedan páginas
func (p *Pager[K, T]) Next() (Request, bool) {
	if p.loading || !p.more {
		return Request{}, false
	}
	p.loading = true
	p.pending = Request{Gen: p.gen, Page: p.page + 1}
	return p.pending, true
}

// Receive incorpora una página. Devuelve false si la respuesta es antigua, no
// corresponde a la petición en curso o la página ya estaba cargada
func (p *Pager[K, T]) Receive(req Request, items []T, meta *model.Meta) bool {
	if req != p.pending || !p.loading {
		return false
	}
	p.loading = false

	if req.Page == 1 {
		p.clear()
	}
	if _, ok := p.loaded[req.Page]; ok {
		return false
	}
	p.loaded[req.Page] = struct{}{}
	p.page = req.Page

	for _, it := range items {
		k := p.key(it)
		if _, ok := p.seen[k]; ok {
			continue
		}
		p.seen[k] = struct{}{}
		p.items = append(p.items, it)
	}

	if meta != nil && meta.TotalPages > 0 {
		p.more = req.Page < meta.TotalPages
	} else if meta != nil {
		p.more = false
	} else {
		p.more = len(items) >= p.PageSize
	}
	return true
}

// Fail termina la carga en curso sin cambiar los items
func (p *Pager[K, T]) Fail(req Request) {
	if req == p.pending {
		p.loading = false
	}
}

func (p *Pager[K, T]) Items() []T {
	return p.items
}

func (p *Pager[K, T]) Len() int {
	return len(p.items)
}

func (p *Pager[K, T]) Page() int {
	return p.page
}

func (p *Pager[K, T]) Loading() bool {
	return p.loading
}

func (p *Pager[K, T]) HasMore() bool {
	return p.more
}

// Prepend añade un item al principio (por ejemplo uno recién creado)
func (p *Pager[K, T]) Prepend(it T) {
	k := p.key(it)
	if _, ok := p.seen[k]; ok {
		return
	}
	p.seen[k] = struct{}{}
	p.items = slices.Insert(p.items, 0, it)
}

func (p *Pager[K, T]) Remove(k K) bool {
	i := p.index(k)
	if i < 0 {
		return false
	}
	p.items = slices.Delete(p.items, i, i+1)
	delete(p.seen, k)
	return true
}

// Get devuelve el item con clave k
func (p *Pager[K, T]) Get(k K) (T, bool) {
	i := p.index(k)
	if i < 0 {
		var zero T
		return zero, false
	}
	return p.items[i], true
}

// Replace sustituye el item que tiene la misma clave que it
func (p *Pager[K, T]) Replace(it T) bool {
	i := p.index(p.key(it))
	if i < 0 {
		return false
	}
	p.items[i] = it
	return true
}

// Update aplica fn al item con clave k y devuelve el valor previo
func (p *Pager[K, T]) Update(k K, fn func(T) T) (T, bool) {
	i := p.index(k)
	if i < 0 {
		var zero T
		return zero, false
	}
	prev := p.items[i]
	p.items[i] = fn(prev)
	return prev, true
}

// SetItems sustituye la lista completa conservando el estado de paginación
func (p *Pager[K, T]) SetItems(items []T) {
	p.items = items
	p.seen = make(map[K]struct{}, len(items))
	for _, it := range items {
		p.seen[p.key(it)] = struct{}{}
	}
}

func (p *Pager[K, T]) index(k K) int {
	return slices.IndexFunc(p.items, func(it T) bool { return p.key(it) == k })
}
