package contracts

import "fmt"

// PortInfo describes a MIDI input port as reported by the platform driver.
type PortInfo struct {
	Index        int    // Position of the port in the driver's enumeration.
	Name         string // Port name.
	Manufacturer string // Port manufacturer, when the driver reports one.
	EntityName   string // Name of the entity to which the port belongs.
}

// String returns the port name, falling back to the index when the driver reports no name.
func (p PortInfo) String() string {
	if p.Name == "" {
		return fmt.Sprintf("port %d", p.Index)
	}
	return p.Name
}
