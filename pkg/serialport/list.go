package serialport

import (
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"
)

// List enumerates the serial ports present on the system, sorted by device
// name.
func List() ([]Enumerated, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating ports: %w", err)
	}

	return fromDetails(details), nil
}

func fromDetails(details []*enumerator.PortDetails) []Enumerated {
	ports := make([]Enumerated, 0, len(details))
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}
		ports = append(ports, Enumerated{Name: d.Name, Desc: describe(d)})
	}

	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Name < ports[j].Name
	})

	return ports
}

func describe(d *enumerator.PortDetails) string {
	switch {
	case d.Product != "":
		return d.Product
	case d.IsUSB:
		return fmt.Sprintf("USB %s:%s", d.VID, d.PID)
	default:
		return "n/a"
	}
}
