package config

// parallelConfiguration holds the configuration for the YBWC parallel
// search: how many workers to run and when a node is worth splitting.
type parallelConfiguration struct {
	UseParallelSearch bool
	NumWorkers        int

	SplitMinDepth     int
	SplitMinMovesTodo int
	SplitMaxSlaves    int
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Parallel.UseParallelSearch = true
	Settings.Parallel.NumWorkers = 0 // 0 means runtime.NumCPU()

	Settings.Parallel.SplitMinDepth = 5
	Settings.Parallel.SplitMinMovesTodo = 1
	Settings.Parallel.SplitMaxSlaves = 3
}

// set defaults for configurations here in case a configuration is not
// available from the config file.
func setupParallel() {
	if Settings.Parallel.NumWorkers < 0 {
		Settings.Parallel.NumWorkers = 0
	}
}
