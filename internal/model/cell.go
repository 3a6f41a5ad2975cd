package model

// Transport is a directed shortcut from its owning cell to the cell named TargetName.
// It is taken by issuing MoveCommand verbatim.
type Transport struct {
	TargetName  string `json:"targetName"`
	MoveCommand string `json:"moveCommand"`
}

// Area is descriptive metadata for cells that belong to a named area.
type Area struct {
	Name         string `json:"name"`
	EnterCommand string `json:"enterCommand,omitempty"`
	ExitCommand  string `json:"exitCommand,omitempty"`
}

// Cell is one known map position with its display and terrain metadata.
type Cell struct {
	Coordinate

	Char       string
	Color      string // raw hex color, empty for default
	Name       string
	Features   FeatureSet
	Transports []Transport
	Area       *Area
}

// HasTransports reports whether the cell offers at least one transport.
func (c *Cell) HasTransports() bool {
	return len(c.Transports) > 0
}

// IsTarget reports whether the cell can be the landing point of a transport:
// it must be named and carry FeatureTransportTarget.
func (c *Cell) IsTarget() bool {
	return c.Name != "" && c.Features.Has(FeatureTransportTarget)
}

// TransportTo returns the first transport leading to targetName.
func (c *Cell) TransportTo(targetName string) (Transport, bool) {
	for _, t := range c.Transports {
		if t.TargetName == targetName {
			return t, true
		}
	}
	return Transport{}, false
}
