package editor

import (
	"simon-jot/internal/chunk"
	"simon-jot/internal/simon"
)

// Status is the lifecycle of one chunk's brainstorm response.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Response is what a chunk's widget shows.
type Response struct {
	Status     Status            `json:"status"`
	Brainstorm *simon.Brainstorm `json:"brainstorm,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func (r Response) clone() Response {
	if r.Brainstorm != nil {
		b := *r.Brainstorm
		b.Questions = append([]string(nil), b.Questions...)
		r.Brainstorm = &b
	}
	return r
}

// ChunkView is a positioned chunk together with its response.
type ChunkView struct {
	chunk.PositionedChunk
	Response Response `json:"response"`
}

// Snapshot is the render state of an editor at one version.
type Snapshot struct {
	ID      string      `json:"id"`
	State   State       `json:"state"`
	Mounted bool        `json:"mounted"`
	Pending bool        `json:"pending"` // a recompute is scheduled
	Version uint64      `json:"version"`
	Chunks  []ChunkView `json:"chunks"`
}
