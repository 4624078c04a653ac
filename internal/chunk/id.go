package chunk

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// ID identifies a rendered chunk by its place in the sequence and a hash of its text.
// Editing a paragraph's text or moving it changes its ID, which invalidates any response
// fetched for the old one.
type ID struct {
	Index int
	Hash  uint64
}

// NewID builds the ID of the chunk at index with the given text.
func NewID(index int, text string) ID {
	return ID{Index: index, Hash: HashText(text)}
}

// HashText returns the 64-bit FNV-1a hash of text.
func HashText(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}

// String renders the ID as "<index>-<hash in hex>".
func (id ID) String() string {
	return strconv.Itoa(id.Index) + "-" + strconv.FormatUint(id.Hash, 16)
}

// ParseID parses the String form of an ID.
func ParseID(s string) (ID, error) {
	idx, hash, ok := strings.Cut(s, "-")
	if !ok {
		return ID{}, fmt.Errorf("invalid chunk id %q", s)
	}
	index, err := strconv.Atoi(idx)
	if err != nil || index < 0 {
		return ID{}, fmt.Errorf("invalid chunk id index %q", idx)
	}
	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return ID{}, fmt.Errorf("invalid chunk id hash %q: %w", hash, err)
	}
	return ID{Index: index, Hash: h}, nil
}

// MarshalJSON encodes the ID as its string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes the string form produced by MarshalJSON.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
