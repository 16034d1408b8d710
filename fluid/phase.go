package fluid

// Phase of a state point.
type Phase int

const (
	Liquid Phase = iota
	Gas
	TwoPhase
	Supercritical       // above critical temperature and pressure
	SupercriticalGas    // above critical temperature, below critical pressure
	SupercriticalLiquid // below critical temperature, above critical pressure
)

var phaseNames = [...]string{
	Liquid:              "Liquid",
	Gas:                 "Gas",
	TwoPhase:            "TwoPhase",
	Supercritical:       "Supercritical",
	SupercriticalGas:    "SupercriticalGas",
	SupercriticalLiquid: "SupercriticalLiquid",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}
