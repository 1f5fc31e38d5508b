package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store. It keeps every collection in a map guarded by a single lock and
// applies transactions atomically by staging writes until the transaction function returns.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
	// order keeps insertion order per collection so unordered listings are stable.
	order map[string][]string
	now   Clock

	subsMu sync.Mutex
	subs   map[string]map[int]func(*Document)
	nextID int
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store. A nil clock defaults to time.Now.
func NewMemory(now Clock) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		collections: make(map[string]map[string]Record),
		order:       make(map[string][]string),
		now:         now,
		subs:        make(map[string]map[int]func(*Document)),
	}
}

func (m *Memory) Create(ctx context.Context, collection string, data Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()

	m.mu.Lock()
	m.put(collection, id, applyTransforms(Record{}, flatten(data), m.now()))
	doc := m.snapshot(collection, id)
	m.mu.Unlock()

	m.notify(collection, id, doc)
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, data Record, merge bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	base, fields := Record{}, flatten(data)
	if existing, ok := m.collections[collection][id]; ok && merge {
		base, fields = existing, mergeFields(data)
	}
	m.put(collection, id, applyTransforms(base, fields, m.now()))
	doc := m.snapshot(collection, id)
	m.mu.Unlock()

	m.notify(collection, id, doc)
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc := m.snapshot(collection, id)
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (m *Memory) List(ctx context.Context, collection string, q Query) ([]*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.query(collection, q), nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, updates []Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	existing, ok := m.collections[collection][id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.put(collection, id, applyTransforms(existing, updates, m.now()))
	doc := m.snapshot(collection, id)
	m.mu.Unlock()

	m.notify(collection, id, doc)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	_, existed := m.collections[collection][id]
	m.remove(collection, id)
	m.mu.Unlock()

	if existed {
		m.notify(collection, id, nil)
	}
	return nil
}

func (m *Memory) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	tx := &memoryTx{store: m, staged: map[string]*stagedWrite{}}
	if err := fn(ctx, tx); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return err
	}

	// Commit. Updates are validated before anything is applied.
	for _, key := range tx.keys {
		w := tx.staged[key]
		if !w.delete {
			if _, ok := m.collections[w.collection][w.id]; !ok {
				m.mu.Unlock()
				return ErrNotFound
			}
		}
	}
	now := m.now()
	type change struct {
		collection, id string
		doc            *Document
	}
	changes := make([]change, 0, len(tx.keys))
	for _, key := range tx.keys {
		w := tx.staged[key]
		if w.delete {
			m.remove(w.collection, w.id)
			changes = append(changes, change{collection: w.collection, id: w.id})
			continue
		}
		existing := m.collections[w.collection][w.id]
		m.put(w.collection, w.id, applyTransforms(existing, w.updates, now))
		changes = append(changes, change{w.collection, w.id, m.snapshot(w.collection, w.id)})
	}
	m.mu.Unlock()

	for _, c := range changes {
		m.notify(c.collection, c.id, c.doc)
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, collection, id string, fn func(*Document)) (Unsubscribe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := docKey(collection, id)
	m.subsMu.Lock()
	m.nextID++
	subID := m.nextID
	if m.subs[key] == nil {
		m.subs[key] = make(map[int]func(*Document))
	}
	m.subs[key][subID] = fn
	m.subsMu.Unlock()

	m.mu.RLock()
	current := m.snapshot(collection, id)
	m.mu.RUnlock()
	fn(current)

	var once sync.Once
	stopped := make(chan struct{})
	unsubscribe := func() {
		once.Do(func() {
			m.subsMu.Lock()
			delete(m.subs[key], subID)
			m.subsMu.Unlock()
			close(stopped)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-stopped:
		}
	}()

	return unsubscribe, nil
}

func (m *Memory) Close() error {
	return nil
}

type stagedWrite struct {
	collection string
	id         string
	updates    []Update
	delete     bool
}

// memoryTx runs with the store lock held.
type memoryTx struct {
	store  *Memory
	staged map[string]*stagedWrite
	keys   []string
}

func (t *memoryTx) Get(collection, id string) (*Document, error) {
	if len(t.keys) > 0 {
		return nil, ErrReadAfterWrite
	}
	doc := t.store.snapshot(collection, id)
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (t *memoryTx) List(collection string, q Query) ([]*Document, error) {
	if len(t.keys) > 0 {
		return nil, ErrReadAfterWrite
	}
	return t.store.query(collection, q), nil
}

func (t *memoryTx) Update(collection, id string, updates []Update) error {
	w := t.stage(collection, id)
	if w.delete {
		return fmt.Errorf("docstore: %s/%s is deleted in this transaction", collection, id)
	}
	w.updates = append(w.updates, updates...)
	return nil
}

func (t *memoryTx) Delete(collection, id string) error {
	w := t.stage(collection, id)
	w.delete = true
	w.updates = nil
	return nil
}

func (t *memoryTx) stage(collection, id string) *stagedWrite {
	key := docKey(collection, id)
	if w, ok := t.staged[key]; ok {
		return w
	}
	w := &stagedWrite{collection: collection, id: id}
	t.staged[key] = w
	t.keys = append(t.keys, key)
	return w
}

// Helpers. Callers hold m.mu.

func (m *Memory) put(collection, id string, data Record) {
	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]Record)
		m.collections[collection] = coll
	}
	if _, exists := coll[id]; !exists {
		m.order[collection] = append(m.order[collection], id)
	}
	coll[id] = data
}

func (m *Memory) remove(collection, id string) {
	if _, ok := m.collections[collection][id]; !ok {
		return
	}
	delete(m.collections[collection], id)
	ids := m.order[collection]
	for i, v := range ids {
		if v == id {
			m.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (m *Memory) snapshot(collection, id string) *Document {
	data, ok := m.collections[collection][id]
	if !ok {
		return nil
	}
	return &Document{ID: id, Data: copyValue(data).(Record)}
}

func (m *Memory) query(collection string, q Query) []*Document {
	docs := []*Document{}
	for _, id := range m.order[collection] {
		data := m.collections[collection][id]
		if !matches(data, q.Filters) {
			continue
		}
		if q.OrderBy != "" {
			if _, ok := lookup(data, q.OrderBy); !ok {
				// Documents without the ordered field are excluded, as in Firestore.
				continue
			}
		}
		docs = append(docs, m.snapshot(collection, id))
	}

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a, _ := lookup(docs[i].Data, q.OrderBy)
			b, _ := lookup(docs[j].Data, q.OrderBy)
			if q.Direction == Desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs
}

func (m *Memory) notify(collection, id string, doc *Document) {
	m.subsMu.Lock()
	fns := make([]func(*Document), 0, len(m.subs[docKey(collection, id)]))
	for _, fn := range m.subs[docKey(collection, id)] {
		fns = append(fns, fn)
	}
	m.subsMu.Unlock()

	for _, fn := range fns {
		if doc == nil {
			fn(nil)
			continue
		}
		fn(&Document{ID: doc.ID, Data: copyValue(doc.Data).(Record)})
	}
}

func docKey(collection, id string) string {
	return collection + "/" + id
}

// flatten turns a record into top-level field updates, used when creating documents.
func flatten(data Record) []Update {
	updates := make([]Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, Update{Path: k, Value: v})
	}
	return updates
}

// mergeFields converts a record into leaf updates so nested maps merge instead of replacing.
func mergeFields(data Record) []Update {
	var updates []Update
	var walk func(prefix string, r map[string]interface{})
	walk = func(prefix string, r map[string]interface{}) {
		for k, v := range r {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			switch nested := v.(type) {
			case Record:
				walk(path, nested)
			case map[string]interface{}:
				walk(path, nested)
			default:
				updates = append(updates, Update{Path: path, Value: v})
			}
		}
	}
	walk("", data)
	return updates
}

// applyTransforms returns a copy of base with the updates applied.
func applyTransforms(base Record, updates []Update, now time.Time) Record {
	out := copyValue(base).(Record)
	for _, u := range updates {
		parts := strings.Split(u.Path, ".")
		parent := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := parent[p].(map[string]interface{})
			if !ok {
				if rec, isRec := parent[p].(Record); isRec {
					child = rec
				} else {
					child = map[string]interface{}{}
				}
				parent[p] = child
			}
			parent = child
		}
		field := parts[len(parts)-1]

		switch val := u.Value.(type) {
		case transform:
			if val == serverTimestamp {
				parent[field] = now
			} else {
				delete(parent, field)
			}
		case arrayUnion:
			current, _ := parent[field].([]interface{})
			merged := append([]interface{}{}, current...)
			for _, e := range val.elems {
				if !containsValue(merged, e) {
					merged = append(merged, e)
				}
			}
			parent[field] = merged
		default:
			parent[field] = normalize(u.Value)
		}
	}
	return out
}

// normalize stores slices as []interface{} and maps as map[string]interface{} so documents
// look the same as the ones Firestore returns.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return val
	case Record:
		return normalize(map[string]interface{}(val))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = normalize(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return v
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = normalize(rv.Index(i).Interface())
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Record:
		out := make(Record, len(val))
		for k, e := range val {
			out[k] = copyValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = copyValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

func lookup(data Record, path string) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(data)
	for _, p := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func matches(data Record, filters []Filter) bool {
	for _, f := range filters {
		v, ok := lookup(data, f.Path)
		if !ok || !equalValues(v, f.Value) {
			return false
		}
	}
	return true
}

func containsValue(list []interface{}, v interface{}) bool {
	for _, e := range list {
		if equalValues(e, v) {
			return true
		}
	}
	return false
}

func equalValues(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
	}
	return reflect.DeepEqual(a, b)
}

func less(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa < fb
		}
	}
	switch va := a.(type) {
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Before(vb)
		}
	case string:
		if vb, ok := b.(string); ok {
			return va < vb
		}
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
