package config

// evalConfiguration holds the configuration of the positional evaluator.
type evalConfiguration struct {
	WeightsPath string

	UseMobility      bool
	MobilityWeight   int16

	UsePotentialMobility bool

	UseStability bool
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Eval.WeightsPath = "weights.bin"

	Settings.Eval.UseMobility = true
	Settings.Eval.MobilityWeight = 1

	Settings.Eval.UsePotentialMobility = true

	Settings.Eval.UseStability = true
}

// set defaults for configurations here in case a configuration is not
// available from the config file.
func setupEval() {
}
