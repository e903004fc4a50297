package nats

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/crypto/blake2b"

	"github.com/codewandler/confplane-go/core/metrics"
	"github.com/codewandler/confplane-go/ports/store"
)

// casAttempts bounds the optimistic-revision loop of one write transaction.
// Contention on a single node-scoped key is limited to callers on that node,
// so the loop settles fast; exhausting it means the transaction aborts.
const casAttempts = 8

type StoreConfig struct {
	Connect Connector
	Bucket  string
	// Replicas is the bucket's replica count; use the cluster size for the
	// full-replica-on-every-node mode the schema declares.
	Replicas int
	Log      *slog.Logger
	Metrics  metrics.StoreMetrics
}

// Store implements the replicated config table over a JetStream KV bucket.
type Store struct {
	kv     jetstream.KeyValue
	schema store.Schema
	log    *slog.Logger
	m      metrics.StoreMetrics
}

func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = store.DefaultSchema().Table
	}
	if cfg.Replicas <= 0 {
		cfg.Replicas = 1
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NopStoreMetrics()
	}

	doConnect := cfg.Connect
	if doConnect == nil {
		doConnect = ConnectDefault()
	}
	nc, _, err := doConnect()
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}

	kv, err := js.CreateOrUpdateKeyValue(context.Background(), jetstream.KeyValueConfig{
		Bucket:   cfg.Bucket,
		Storage:  jetstream.FileStorage,
		Replicas: cfg.Replicas,
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
	}

	schema := store.DefaultSchema()
	schema.Table = cfg.Bucket
	cfg.Log.Info("config bucket ready",
		slog.String("bucket", cfg.Bucket),
		slog.Int("replicas", cfg.Replicas),
	)

	return &Store{
		kv:     kv,
		schema: schema,
		log:    cfg.Log,
		m:      cfg.Metrics,
	}, nil
}

func (s *Store) Read(ctx context.Context, id store.Identity) (store.Record, error) {
	entry, err := s.kv.Get(ctx, keyFor(id))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			s.m.Read(false)
			return store.Record{}, store.ErrNotFound
		}
		s.m.Read(false)
		return store.Record{}, fmt.Errorf("read %s: %w", id, err)
	}
	s.m.Read(true)

	var rec store.Record
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return store.Record{}, fmt.Errorf("decode %s: %w", id, err)
	}
	return rec, nil
}

func (s *Store) Write(ctx context.Context, id store.Identity, value any) (store.Record, error) {
	if id.IsGlobal() {
		return store.Record{}, store.ErrGlobalWrite
	}

	defer s.m.WriteDuration().ObserveDuration()
	key := keyFor(id)

	for range casAttempts {
		entry, err := s.kv.Get(ctx, key)

		switch {
		case errors.Is(err, jetstream.ErrKeyNotFound):
			rec := store.Record{ID: id, Value: value}
			rec.Clock = rec.Clock.Tick(id.Node)
			data, err := json.Marshal(rec)
			if err != nil {
				s.m.Write(false)
				return store.Record{}, err
			}
			if _, err := s.kv.Create(ctx, key, data); err != nil {
				if errors.Is(err, jetstream.ErrKeyExists) {
					continue // lost the create race, reread
				}
				s.m.Write(false)
				return store.Record{}, fmt.Errorf("%w: create %s: %w", store.ErrTxAborted, id, err)
			}
			s.m.Write(true)
			return rec, nil

		case err != nil:
			s.m.Write(false)
			return store.Record{}, fmt.Errorf("%w: read %s: %w", store.ErrTxAborted, id, err)
		}

		var rec store.Record
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			s.m.Write(false)
			return store.Record{}, fmt.Errorf("%w: decode %s: %w", store.ErrTxAborted, id, err)
		}
		rec.Value = value
		rec.Clock = rec.Clock.Tick(id.Node)
		data, err := json.Marshal(rec)
		if err != nil {
			s.m.Write(false)
			return store.Record{}, err
		}

		if _, err := s.kv.Update(ctx, key, data, entry.Revision()); err != nil {
			if isRevisionConflict(err) {
				continue // another writer got in between, reread
			}
			s.m.Write(false)
			return store.Record{}, fmt.Errorf("%w: update %s: %w", store.ErrTxAborted, id, err)
		}
		s.m.Write(true)
		return rec, nil
	}

	s.m.Write(false)
	return store.Record{}, fmt.Errorf("%w: %s: too much contention", store.ErrTxAborted, id)
}

func (s *Store) Schema() store.Schema { return s.schema }

func isRevisionConflict(err error) bool {
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}

// keyFor maps an identity onto the bucket's key space. Global entries live
// under "g.", node-scoped ones under "n.<node>.". Segments outside the KV
// key alphabet are replaced by a blake2b fingerprint.
func keyFor(id store.Identity) string {
	if id.IsGlobal() {
		return strings.Join([]string{"g", keySegment(id.Namespace), keySegment(id.Item)}, ".")
	}
	return strings.Join([]string{"n", keySegment(id.Node), keySegment(id.Namespace), keySegment(id.Item)}, ".")
}

func keySegment(s string) string {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			sum := blake2b.Sum256([]byte(s))
			return "x" + hex.EncodeToString(sum[:8])
		}
	}
	if s == "" {
		return "x"
	}
	return s
}

var _ store.Store = (*Store)(nil)
