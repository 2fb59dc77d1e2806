package config

// searchConfiguration holds the configuration of a search instance: which
// pruning and move-ordering techniques are enabled and their tuning
// parameters.
type searchConfiguration struct {
	// Transposition table
	UseTT     bool
	TTSizeMB  int
	UseTTMove bool

	// Move ordering
	UsePVS       bool
	UseIID       bool
	IIDDepth     int
	IIDReduction int

	// Prunings pre move generation. USE_SOLID is spec.md's suspect-source
	// flag (section 9's "Open questions"): partially documented upstream,
	// default-off here to match.
	UseStabilityCutoff bool

	// ProbCut-style selectivity (index into the fixed t-value table)
	UseProbCut         bool
	DefaultSelectivity uint8

	// Endgame solver cutover: positions with this many empties or fewer
	// are solved exactly with the endgame search
	// instead of the midgame evaluator.
	EndgameDepth int
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Search.UseTT = true
	Settings.Search.TTSizeMB = 128
	Settings.Search.UseTTMove = true

	Settings.Search.UsePVS = true
	// USE_IID: spec.md section 9's "Open questions / suspect source
	// behavior" names this default-off; see DESIGN.md.
	Settings.Search.UseIID = false
	Settings.Search.IIDDepth = 6
	Settings.Search.IIDReduction = 2

	// USE_SOLID: same spec.md note as UseIID above, default-off.
	Settings.Search.UseStabilityCutoff = false

	Settings.Search.UseProbCut = true
	Settings.Search.DefaultSelectivity = 3

	Settings.Search.EndgameDepth = 12
}

// set defaults for configurations here in case a configuration is not
// available from the config file.
func setupSearch() {
}
