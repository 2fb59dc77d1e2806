package board

// MoveGenerator is the interface for a move generator and flip
// backend, per spec section 9's "expose a single interface for move
// generator and flip" guidance. DumbFill is the only implementation
// today (an iterative shift-and-mask directional fill); a
// kindergarten-table or SIMD backend could satisfy the same interface.
// Position and the search call the package functions GetMoves/Flip
// directly rather than going through this interface.
type MoveGenerator interface {
	GetMoves(p, o uint64) uint64
	Flip(sq int, p, o uint64) uint64
}

// DumbFill is the directional-fill MoveGenerator implemented in
// board.go (GetMoves/Flip package functions).
type DumbFill struct{}

// GetMoves implements MoveGenerator.
func (DumbFill) GetMoves(p, o uint64) uint64 { return GetMoves(p, o) }

// Flip implements MoveGenerator.
func (DumbFill) Flip(sq int, p, o uint64) uint64 { return Flip(sq, p, o) }

// DefaultGenerator is the package-wide MoveGenerator value. Position
// does not read it; its methods call GetMoves/Flip directly.
var DefaultGenerator MoveGenerator = DumbFill{}
