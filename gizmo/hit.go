package gizmo

import (
	"fmt"

	"viewport-chrome/math"
)

// HitKind classifies which feature of the cube a ray struck. The kind is
// fully determined by how many components of the local direction are
// non-zero: one for a face, two for an edge, three for a corner.
type HitKind uint8

const (
	HitNone HitKind = iota
	HitFace
	HitEdge
	HitCorner
)

func (k HitKind) String() string {
	switch k {
	case HitFace:
		return "face"
	case HitEdge:
		return "edge"
	case HitCorner:
		return "corner"
	default:
		return "none"
	}
}

// Hit is a classified cube feature. Dir components are exactly -1, 0 or +1
// in the cube's local frame. Two hits are the same feature iff they are
// structurally equal.
type Hit struct {
	Kind HitKind
	Dir  math.Vec3
}

// HitForDirection derives the kind from the non-zero component count.
// A zero direction yields an invalid hit.
func HitForDirection(dir math.Vec3) Hit {
	n := 0
	if dir.X != 0 {
		n++
	}
	if dir.Y != 0 {
		n++
	}
	if dir.Z != 0 {
		n++
	}
	kind := HitNone
	switch n {
	case 1:
		kind = HitFace
	case 2:
		kind = HitEdge
	case 3:
		kind = HitCorner
	}
	return Hit{Kind: kind, Dir: dir}
}

func (h Hit) Valid() bool {
	return h.Kind != HitNone
}

// Key returns a deterministic identifier unique per (kind, direction)
// pair, used to index highlight geometry.
func (h Hit) Key() string {
	return fmt.Sprintf("%s:%d,%d,%d", h.Kind, int(h.Dir.X), int(h.Dir.Y), int(h.Dir.Z))
}
