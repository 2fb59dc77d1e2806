package board

import "github.com/frankkopp/edaxgo/internal/bits"

// Perft counts the number of leaf positions reachable from p after
// exactly depth plies, following every legal move (and pass, when a
// side has none). It is a pure move-generation correctness and
// throughput harness, grounded on movegen/perft.go's node-count walk,
// adapted here for Othello's legal-move and pass semantics rather than
// chess's always-a-move-available rule.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GetMoves()
	if moves == 0 {
		if !CanMove(p.O, p.P) {
			// game over: no further plies possible, this is a leaf
			// regardless of remaining depth.
			return 1
		}
		p.DoMove(PassMove)
		n := Perft(p, depth-1)
		p.UndoMove()
		return n
	}
	var nodes uint64
	rest := moves
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		p.DoMove(sq)
		nodes += Perft(p, depth-1)
		p.UndoMove()
	}
	return nodes
}
