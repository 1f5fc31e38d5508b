package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is a Store backed by Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

var _ Store = (*Firestore)(nil)

// NewFirestore wraps an initialized Firestore client.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) Create(ctx context.Context, collection string, data Record) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, toFirestoreRecord(data))
	if err != nil {
		return "", mapFirestoreError(err)
	}
	return ref.ID, nil
}

func (f *Firestore) Set(ctx context.Context, collection, id string, data Record, merge bool) error {
	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	_, err := f.client.Collection(collection).Doc(id).Set(ctx, toFirestoreRecord(data), opts...)
	return mapFirestoreError(err)
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (*Document, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromSnapshot(snap), nil
}

func (f *Firestore) List(ctx context.Context, collection string, q Query) ([]*Document, error) {
	iter := buildQuery(f.client.Collection(collection), q).Documents(ctx)
	defer iter.Stop()
	return drain(iter)
}

func (f *Firestore) Update(ctx context.Context, collection, id string, updates []Update) error {
	_, err := f.client.Collection(collection).Doc(id).Update(ctx, toFirestoreUpdates(updates))
	return mapFirestoreError(err)
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	_, err := f.client.Collection(collection).Doc(id).Delete(ctx)
	return mapFirestoreError(err)
}

func (f *Firestore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	err := f.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{client: f.client, tx: t})
	})
	return mapFirestoreError(err)
}

// Subscribe attaches a snapshot listener to a single document.
func (f *Firestore) Subscribe(ctx context.Context, collection, id string, fn func(*Document)) (Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	it := f.client.Collection(collection).Doc(id).Snapshots(ctx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			// Canceled or DeadlineExceeded is returned once the subscription is stopped.
			if c := status.Code(err); c == codes.Canceled || c == codes.DeadlineExceeded {
				return
			}
			if err != nil {
				glog.Errorf("%s/%s snapshot listener error: %v\n", collection, id, err)
				return
			}
			if !snap.Exists() {
				fn(nil)
				continue
			}
			fn(fromSnapshot(snap))
		}
	}()

	return Unsubscribe(cancel), nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

type firestoreTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) Get(collection, id string) (*Document, error) {
	snap, err := t.tx.Get(t.client.Collection(collection).Doc(id))
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromSnapshot(snap), nil
}

func (t *firestoreTx) List(collection string, q Query) ([]*Document, error) {
	iter := t.tx.Documents(buildQuery(t.client.Collection(collection), q))
	defer iter.Stop()
	return drain(iter)
}

func (t *firestoreTx) Update(collection, id string, updates []Update) error {
	return t.tx.Update(t.client.Collection(collection).Doc(id), toFirestoreUpdates(updates))
}

func (t *firestoreTx) Delete(collection, id string) error {
	return t.tx.Delete(t.client.Collection(collection).Doc(id))
}

// Helpers

func buildQuery(coll *firestore.CollectionRef, q Query) firestore.Query {
	query := coll.Query
	for _, f := range q.Filters {
		query = query.Where(f.Path, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Direction == Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

func drain(iter *firestore.DocumentIterator) ([]*Document, error) {
	docs := []*Document{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapFirestoreError(err)
		}
		docs = append(docs, fromSnapshot(snap))
	}
	return docs, nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) *Document {
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}
}

func toFirestoreValue(v interface{}) interface{} {
	switch val := v.(type) {
	case transform:
		if val == serverTimestamp {
			return firestore.ServerTimestamp
		}
		return firestore.Delete
	case arrayUnion:
		return firestore.ArrayUnion(val.elems...)
	case Record:
		return toFirestoreRecord(val)
	case map[string]interface{}:
		return toFirestoreRecord(val)
	default:
		return v
	}
}

func toFirestoreRecord(data Record) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = toFirestoreValue(v)
	}
	return out
}

func toFirestoreUpdates(updates []Update) []firestore.Update {
	out := make([]firestore.Update, 0, len(updates))
	for _, u := range updates {
		out = append(out, firestore.Update{Path: u.Path, Value: toFirestoreValue(u.Value)})
	}
	return out
}

func mapFirestoreError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		// Not an RPC failure, e.g. an error returned by a transaction function.
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return ErrNotFound
	case codes.DeadlineExceeded:
		return errors.Wrap(context.DeadlineExceeded, st.Message())
	default:
		return errors.Wrap(err, "firestore")
	}
}
