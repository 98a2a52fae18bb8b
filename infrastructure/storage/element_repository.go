package storage

import (
	"board-lab/domain"
	"board-lab/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const elementPrefix = "element:"

// ElementRepository stores elements as protobuf Structs in BadgerDB,
// so unknown fields survive a round-trip. Numbers come back as float64.
type ElementRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewElementRepository(db *badger.DB, log *slog.Logger) *ElementRepository {
	return &ElementRepository{db: db, log: log}
}

func elementKey(elementID, room string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", elementPrefix, room, elementID))
}

func roomPrefix(room string) []byte {
	return []byte(fmt.Sprintf("%s%s:", elementPrefix, room))
}

func (r ElementRepository) Get(ctx context.Context, elementID, room string) (domain.Element, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	var element domain.Element
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(elementKey(elementID, room))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			element, err = decodeElement(v)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %w", errors.ErrStorage, elementID, err)
	}
	return element, true, nil
}

// Put replaces the whole stored record.
func (r ElementRepository) Put(ctx context.Context, element domain.Element) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	if element.ID() == "" || element.Room() == "" {
		return fmt.Errorf("%w: element_id and room are required", errors.ErrStorage)
	}
	data, err := encodeElement(element)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", errors.ErrStorage, element.ID(), err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(elementKey(element.ID(), element.Room()), data)
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", errors.ErrStorage, element.ID(), err)
	}
	return nil
}

// Delete is a no-op for an unknown element.
func (r ElementRepository) Delete(ctx context.Context, elementID, room string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(elementKey(elementID, room))
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", errors.ErrStorage, elementID, err)
	}
	return nil
}

// Scan returns every element stored for the room, ordered by element id.
func (r ElementRepository) Scan(ctx context.Context, room string) ([]domain.Element, error) {
	elements, err := r.scan(ctx, roomPrefix(room))
	if err != nil {
		return nil, err
	}
	// A room containing ':' shares its key prefix with other rooms
	filtered := elements[:0]
	for _, element := range elements {
		if element.Room() == room {
			filtered = append(filtered, element)
		}
	}
	return filtered, nil
}

// All returns every stored element, grouped by room.
func (r ElementRepository) All(ctx context.Context) ([]domain.Element, error) {
	return r.scan(ctx, []byte(elementPrefix))
}

func (r ElementRepository) scan(ctx context.Context, prefix []byte) ([]domain.Element, error) {
	var elements []domain.Element
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(v []byte) error {
				element, err := decodeElement(v)
				if err != nil {
					r.log.Warn("Unreadable element skipped", "key", string(it.Item().Key()), "error", err)
					return nil
				}
				elements = append(elements, element)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", errors.ErrStorage, prefix, err)
	}
	return elements, nil
}

// encodeElement goes through JSON so any JSON-compatible value
// (ints, typed slices, nested maps) lands in the Struct.
func encodeElement(element domain.Element) ([]byte, error) {
	raw, err := json.Marshal(element)
	if err != nil {
		return nil, err
	}
	var record structpb.Struct
	if err := protojson.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return proto.Marshal(&record)
}

func decodeElement(data []byte) (domain.Element, error) {
	var record structpb.Struct
	if err := proto.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal element: %w", err)
	}
	return record.AsMap(), nil
}
