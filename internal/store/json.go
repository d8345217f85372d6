package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON reads (c, userID) and decodes it into v. found is false, and v is
// left untouched, when nothing is stored.
func GetJSON(ctx context.Context, s Store, c Collection, userID string, v any) (found bool, err error) {
	data, err := s.Get(ctx, c, userID)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", c, err)
	}
	return true, nil
}

// JSONBlob encodes v as the payload of c.
func JSONBlob(c Collection, v any) (Blob, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Blob{}, fmt.Errorf("encode %s: %w", c, err)
	}
	return Blob{Collection: c, Data: data}, nil
}
