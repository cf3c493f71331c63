// Package pciids resolves PCI vendor/device identifier pairs to
// human-readable names using the flat-text pci.ids database shipped by
// most distributions.
package pciids

import (
	"bufio"
	"os"
	"strings"
)

// Lookup scans the database at dbPath for the given vendor and device
// identifiers (hex strings, case-insensitive) and returns
// "<vendor name> <device name>" on a match. It reports false when the file
// is missing, the vendor never appears, or the device is not listed under
// the matched vendor. The scan is linear; the database is only consulted
// once at startup so no index is kept.
func Lookup(dbPath, vendor, device string) (string, bool) {
	f, err := os.Open(dbPath)
	if err != nil {
		return "", false
	}
	defer f.Close()

	vendor = strings.ToLower(vendor)
	device = strings.ToLower(device)

	var vendorName string

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, "\t") {
			// Vendor record: either opens the block we want or closes a
			// previously matched one.
			id, name := splitIDName(line)
			if strings.ToLower(id) == vendor && name != "" {
				vendorName = name
			} else {
				vendorName = ""
			}
			continue
		}

		if vendorName == "" {
			continue
		}

		id, name := splitIDName(strings.TrimSpace(line))
		if strings.ToLower(id) == device && name != "" {
			return vendorName + " " + name, true
		}
	}

	return "", false
}

// splitIDName splits "<id><whitespace><name>" on the first whitespace run.
func splitIDName(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
