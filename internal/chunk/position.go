package chunk

import "strings"

// FirstChunkOffset corrects the first chunk's position. The oracle reports the first line's
// baseline below the editor's visual top.
const FirstChunkOffset = -30.0

// Bounds is the on-screen box of a character in the editor, in pixels.
type Bounds struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Height float64 `json:"height"`
}

// BoundsOracle maps a character offset to its on-screen bounds.
type BoundsOracle interface {
	Bounds(offset int) Bounds
}

// BoundsFunc adapts a function to a BoundsOracle.
type BoundsFunc func(offset int) Bounds

// Bounds calls f(offset).
func (f BoundsFunc) Bounds(offset int) Bounds {
	return f(offset)
}

// PositionedChunk is a chunk placed at a vertical pixel position next to the editor.
type PositionedChunk struct {
	ID       ID      `json:"id"`
	Offset   int     `json:"offset"`
	Position float64 `json:"position"`
	Text     string  `json:"text"`
}

// MapPositions places every non-empty chunk using the oracle.
//
// Each chunk is measured at StartOffset+1 so the query lands inside the chunk's first line. The
// chunk at index 0 is shifted by FirstChunkOffset. Chunks that are empty or only whitespace are
// dropped without querying the oracle. A nil oracle means the editor is not mounted yet: MapPositions returns false and the
// caller keeps whatever it rendered before.
func MapPositions(chunks []Chunk, oracle BoundsOracle) ([]PositionedChunk, bool) {
	if oracle == nil {
		return nil, false
	}

	positioned := make([]PositionedChunk, 0, len(chunks))
	for i, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}

		top := oracle.Bounds(c.StartOffset + 1).Top
		if i == 0 {
			top += FirstChunkOffset
		}

		positioned = append(positioned, PositionedChunk{
			ID:       NewID(len(positioned), c.Text),
			Offset:   c.StartOffset,
			Position: top,
			Text:     c.Text,
		})
	}

	return positioned, true
}
