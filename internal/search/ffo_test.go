package search

import "testing"

// Scenarios 5 and 6 of spec.md section 8 call for the canonical FFO
// endgame test positions #40 and #41 to be embedded verbatim from the
// original project's OBF test files and solved exactly (depth-20/full
// empties), expecting A2/+38 and H4/+0 respectively.
//
// The retrieval pack this module was built from does not contain those
// OBF files (or any copy of the FFO test suite), so the literal
// 65-character board strings cannot be embedded here without
// fabricating benchmark input that was never actually verified against
// the real positions. See DESIGN.md's "Open Questions" entry for this
// gap.
//
// TODO: once the real FFO #40/#41 OBF lines are available, replace
// this skip with board.ParseBoardString(obfLine) fed through
// StartSearchSync at full selectivity and assert BestMove/Score match
// the table in spec.md section 8.
func TestFFOAcceptanceSuitePendingRealTestData(t *testing.T) {
	t.Skip("FFO #40/#41 OBF positions are not present in the retrieval pack; see DESIGN.md")
}
