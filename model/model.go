package model

// Units at this layer are the ones an engineer types: °C, kPa, kJ/kg and
// percent. The cycle factory converts them to SI.

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Message types understood by the websocket hub.
const (
	MsgCycle       = "cycle"
	MsgAnalysis    = "analysis"
	MsgSweep       = "sweep"
	MsgHistory     = "history"
	MsgError       = "error"
	MsgCycleRes    = "cycleResult"
	MsgAnalysisRes = "analysisResult"
	MsgSweepRes    = "sweepResult"
	MsgHistRes     = "historyResult"
)

type Evaporator struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Superheat   float64 `json:"superheat" yaml:"superheat"`
}

type Condenser struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Subcooling  float64 `json:"subcooling" yaml:"subcooling"`
}

// GasCooler pressure may be left at zero for R744, which then uses the
// optimal high pressure correlation.
type GasCooler struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Pressure    float64 `json:"pressure" yaml:"pressure"`
}

type Recuperator struct {
	TemperatureDifference float64 `json:"temperature_difference" yaml:"temperature_difference"`
}

// Economizer superheat is ignored by the two-phase injection variants.
type Economizer struct {
	TemperatureDifference float64 `json:"temperature_difference" yaml:"temperature_difference"`
	Superheat             float64 `json:"superheat" yaml:"superheat"`
}

type Ejector struct {
	NozzleEfficiency   float64 `json:"nozzle_efficiency" yaml:"nozzle_efficiency"`
	SuctionEfficiency  float64 `json:"suction_efficiency" yaml:"suction_efficiency"`
	DiffuserEfficiency float64 `json:"diffuser_efficiency" yaml:"diffuser_efficiency"`
}

// Boundary holds the indoor and outdoor temperatures of an entropy analysis.
type Boundary struct {
	Indoor  float64 `json:"indoor" yaml:"indoor"`
	Outdoor float64 `json:"outdoor" yaml:"outdoor"`
}

// CycleRequest describes one cycle to build. Exactly one of Condenser and
// GasCooler is set.
type CycleRequest struct {
	Name                 string       `json:"name,omitempty" yaml:"name,omitempty"`
	Topology             string       `json:"topology" yaml:"topology"`
	Refrigerant          string       `json:"refrigerant" yaml:"refrigerant"`
	Evaporator           Evaporator   `json:"evaporator" yaml:"evaporator"`
	Condenser            *Condenser   `json:"condenser,omitempty" yaml:"condenser,omitempty"`
	GasCooler            *GasCooler   `json:"gas_cooler,omitempty" yaml:"gas_cooler,omitempty"`
	CompressorEfficiency float64      `json:"compressor_efficiency" yaml:"compressor_efficiency"`
	Recuperator          *Recuperator `json:"recuperator,omitempty" yaml:"recuperator,omitempty"`
	Economizer           *Economizer  `json:"economizer,omitempty" yaml:"economizer,omitempty"`
	Ejector              *Ejector     `json:"ejector,omitempty" yaml:"ejector,omitempty"`
	IntermediatePressure float64      `json:"intermediate_pressure,omitempty" yaml:"intermediate_pressure,omitempty"`
	Boundary             *Boundary    `json:"boundary,omitempty" yaml:"boundary,omitempty"`
}

// PointData is one state point of a computed cycle.
type PointData struct {
	Index       string   `json:"index" yaml:"index"`
	Label       string   `json:"label" yaml:"label"`
	Pressure    float64  `json:"pressure" yaml:"pressure"`
	Temperature float64  `json:"temperature" yaml:"temperature"`
	Enthalpy    float64  `json:"enthalpy" yaml:"enthalpy"`
	Entropy     float64  `json:"entropy" yaml:"entropy"`
	Quality     *float64 `json:"quality,omitempty" yaml:"quality,omitempty"`
	Phase       string   `json:"phase" yaml:"phase"`
}

// Analysis is the entropy loss breakdown, every ratio in percent.
type Analysis struct {
	Mode             string             `json:"mode" yaml:"mode"`
	Ratios           map[string]float64 `json:"ratios" yaml:"ratios"`
	MinimumWorkRatio float64            `json:"minimum_work_ratio" yaml:"minimum_work_ratio"`
	Perfection       float64            `json:"perfection" yaml:"perfection"`
	RelativeError    float64            `json:"relative_error" yaml:"relative_error"`
}

type CycleResult struct {
	Name                   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Topology               string      `json:"topology" yaml:"topology"`
	Refrigerant            string      `json:"refrigerant" yaml:"refrigerant"`
	Points                 []PointData `json:"points" yaml:"points"`
	SpecificWork           float64     `json:"specific_work" yaml:"specific_work"`
	IsentropicSpecificWork float64     `json:"isentropic_specific_work" yaml:"isentropic_specific_work"`
	CoolingCapacity        float64     `json:"cooling_capacity" yaml:"cooling_capacity"`
	HeatingCapacity        float64     `json:"heating_capacity" yaml:"heating_capacity"`
	EER                    float64     `json:"eer" yaml:"eer"`
	COP                    float64     `json:"cop" yaml:"cop"`
	IntermediatePressure   float64     `json:"intermediate_pressure,omitempty" yaml:"intermediate_pressure,omitempty"`
	Analysis               *Analysis   `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}
