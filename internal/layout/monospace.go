package layout

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"

	"simon-jot/internal/chunk"
)

// Monospace describes a mounted editor viewport laid out on a fixed character grid.
type Monospace struct {
	Columns     int     `json:"columns"`
	LineHeight  float64 `json:"line_height"`
	CharWidth   float64 `json:"char_width"`
	PaddingTop  float64 `json:"padding_top"`
	PaddingLeft float64 `json:"padding_left"`
}

// Validate reports whether the viewport can lay out text.
func (m Monospace) Validate() error {
	if m.Columns <= 0 {
		return errors.New("columns must be greater than 0")
	}
	if m.LineHeight <= 0 {
		return errors.New("line height must be greater than 0")
	}
	if m.CharWidth < 0 {
		return fmt.Errorf("char width must not be negative, got %v", m.CharWidth)
	}
	return nil
}

// Overrides are the viewport fields a mount request sets. Nil fields keep the default, so an
// explicit zero (no padding, say) survives.
type Overrides struct {
	Columns     *int
	LineHeight  *float64
	CharWidth   *float64
	PaddingTop  *float64
	PaddingLeft *float64
}

// Apply returns m with every field set in o replaced.
func (m Monospace) Apply(o Overrides) Monospace {
	if o.Columns != nil {
		m.Columns = *o.Columns
	}
	if o.LineHeight != nil {
		m.LineHeight = *o.LineHeight
	}
	if o.CharWidth != nil {
		m.CharWidth = *o.CharWidth
	}
	if o.PaddingTop != nil {
		m.PaddingTop = *o.PaddingTop
	}
	if o.PaddingLeft != nil {
		m.PaddingLeft = *o.PaddingLeft
	}
	return m
}

// cell is the grid position of one character.
type cell struct {
	row int
	col int
}

// Oracle answers bounds queries for one snapshot of editor text.
type Oracle struct {
	m     Monospace
	cells []cell // cells[i] is where rune i starts; the final entry is the end-of-text caret
}

var _ chunk.BoundsOracle = (*Oracle)(nil)

// Oracle lays out text and returns it as a chunk.BoundsOracle.
func (m Monospace) Oracle(text string) chunk.BoundsOracle {
	return m.Layout(text)
}

// Layout lays out text on the grid. Lines soft-wrap when the next character would not fit in
// Columns display cells; wide characters take two cells.
func (m Monospace) Layout(text string) *Oracle {
	cells := make([]cell, 0, len(text)+1)

	row, col := 0, 0
	for _, r := range text {
		if r == '\n' {
			cells = append(cells, cell{row: row, col: col})
			row++
			col = 0
			continue
		}

		w := runewidth.RuneWidth(r)
		if col > 0 && col+w > m.Columns {
			row++
			col = 0
		}
		cells = append(cells, cell{row: row, col: col})
		col += w
	}
	cells = append(cells, cell{row: row, col: col})

	return &Oracle{m: m, cells: cells}
}

// Bounds returns the box of the character at offset. Offsets outside the text clamp to its ends.
func (o *Oracle) Bounds(offset int) chunk.Bounds {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(o.cells) {
		offset = len(o.cells) - 1
	}
	c := o.cells[offset]

	return chunk.Bounds{
		Top:    o.m.PaddingTop + float64(c.row)*o.m.LineHeight,
		Left:   o.m.PaddingLeft + float64(c.col)*o.m.CharWidth,
		Height: o.m.LineHeight,
	}
}
