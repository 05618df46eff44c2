package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stemsi/sodaubai-backend/internal/kvstore"
)

// loadJSON decodes the blob under key into dst. found is false if the key
// has never been written.
func loadJSON(ctx context.Context, store kvstore.Store, key string, dst interface{}) (bool, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// saveJSON replaces the blob under key with the encoding of src.
func saveJSON(ctx context.Context, store kvstore.Store, key string, src interface{}) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
