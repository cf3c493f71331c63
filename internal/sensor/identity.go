package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/WYUnknown89/lx-thermals/internal/pciids"
)

// Identity is a resolved device name. Resolved reports whether the name
// came from a real source (cpuinfo, pci.ids) rather than a fallback.
type Identity struct {
	Name     string
	Resolved bool
}

// ResolveCPU extracts the CPU model name from a cpuinfo-style text file.
// The first "model name" line decides; an unreadable file or a missing
// field falls back to "Unknown CPU". The name is cosmetic and must never
// block polling, so there is no error path.
func ResolveCPU(cpuinfoPath string) Identity {
	data, err := os.ReadFile(cpuinfoPath)
	if err != nil {
		return Identity{Name: "Unknown CPU"}
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "model name") {
			continue
		}
		if _, value, ok := strings.Cut(line, ":"); ok {
			return Identity{Name: strings.TrimSpace(value), Resolved: true}
		}
		break
	}
	return Identity{Name: "Unknown CPU"}
}

// ResolveGPU names the GPU behind the first DRM card that exposes PCI
// vendor and device identifiers. The pair is looked up in the pci.ids
// database; a miss (or a missing database) degrades to a fallback string
// carrying the raw identifiers, and no usable card at all yields
// "Unknown GPU".
func ResolveGPU(drmDir, pciDBPath string) Identity {
	cards, _ := filepath.Glob(filepath.Join(drmDir, "card*"))
	sort.Strings(cards)

	for _, card := range cards {
		vendor, ok := readString(filepath.Join(card, "device", "vendor"))
		if !ok {
			continue
		}
		device, ok := readString(filepath.Join(card, "device", "device"))
		if !ok {
			continue
		}
		vendor = strings.TrimPrefix(vendor, "0x")
		device = strings.TrimPrefix(device, "0x")

		if name, ok := pciids.Lookup(pciDBPath, vendor, device); ok {
			return Identity{Name: name, Resolved: true}
		}
		return Identity{Name: fmt.Sprintf("AMD Radeon [%s:%s]", vendor, device)}
	}
	return Identity{Name: "Unknown GPU"}
}
