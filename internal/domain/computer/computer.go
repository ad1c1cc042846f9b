// Package computer describes registered fleet computers.
package computer

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstLabel is the label given to the first registered computer.
const FirstLabel = 100

// HostNamePrefix is the prefix of generated host names (HOST-00042).
const HostNamePrefix = "HOST-"

// Computer is a registered machine, identified by its label.
type Computer struct {
	Label                  int
	HostName               string
	MACAddress             string
	IPv4Address            string
	Network                string
	OS                     string
	NetworkAdapter         string
	Secseal                int
	Make                   *string
	Model                  *string
	PCSerialNumber         *string
	NetAdapterSerialNumber *string
	UserName               *string
	YAT                    *string
	OfficeNumber           *string
	Telephone              *string
	OfficeLocation         *string
}

// NetworkCount is the number of computers attached to a network.
type NetworkCount struct {
	Network string
	Count   int64
}

// NextHostName returns the host name following last ("HOST-00041" -> "HOST-00042").
// An empty or unparsable last yields HOST-00001.
func NextHostName(last string) string {
	n := 0
	if strings.HasPrefix(last, HostNamePrefix) {
		if parsed, err := strconv.Atoi(strings.TrimPrefix(last, HostNamePrefix)); err == nil {
			n = parsed
		}
	}
	return fmt.Sprintf("%s%05d", HostNamePrefix, n+1)
}
