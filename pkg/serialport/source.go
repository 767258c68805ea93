package serialport

// ManualDescription is the description carried by ports typed in by hand.
const ManualDescription = "Manually Added"

// PortSource identifies the device a session connects to. It is either a
// port discovered by enumeration or a device path supplied by the user; the
// connect path treats both the same way.
type PortSource interface {
	Device() string
	Description() string

	portSource()
}

// Enumerated is a port reported by the operating system.
type Enumerated struct {
	Name string
	Desc string
}

func (e Enumerated) Device() string      { return e.Name }
func (e Enumerated) Description() string { return e.Desc }
func (Enumerated) portSource()           {}

// Manual is a device path entered by the user that did not come from
// enumeration, e.g. a pty created by socat.
type Manual struct {
	Name string
}

func (m Manual) Device() string    { return m.Name }
func (Manual) Description() string { return ManualDescription }
func (Manual) portSource()         {}

// DisplayName renders a source the way the port picker shows it.
func DisplayName(src PortSource) string {
	return src.Device() + ": " + src.Description()
}

// Resolve returns the enumerated entry whose device matches name, falling
// back to a Manual source when the device was not enumerated.
func Resolve(name string, known []Enumerated) PortSource {
	for _, p := range known {
		if p.Name == name {
			return p
		}
	}
	return Manual{Name: name}
}
