// Package entry describes the custody and job history recorded against computers.
package entry

import "time"

const (
	StatusOpen   = "open"
	StatusClosed = "closed"

	// ReasonRegistration is the reason of the entry created with a computer.
	ReasonRegistration = "Registration"

	// RecentWindow is how long a closed job stays in the "recent" list.
	RecentWindow = 24 * time.Hour
	// TrafficWindow is the period covered by the traffic histogram.
	TrafficWindow = 40 * 24 * time.Hour
)

// TrafficNetworks are the networks reported by the traffic histogram.
var TrafficNetworks = []string{"__S", "__A", "__D", "__T"}

// Entry is one event in a computer's history.
type Entry struct {
	ID        int
	Label     int
	CreatedBy string
	CreatedAt time.Time
	Reason    string
	Status    string
	SignedBy  *string
	SignedAt  *time.Time
}

// Job is an entry joined with its computer's host name.
type Job struct {
	Entry
	HostName string
}

// Policy is the computer information attached to a job.
type Policy struct {
	Label          int
	HostName       string
	MACAddress     string
	IPv4Address    string
	UserName       *string
	OfficeLocation *string
	Telephone      *string
}

// TrafficPoint is the number of entries created on one day for one network.
type TrafficPoint struct {
	Date    time.Time
	Network string
	Count   int64
}

// Sign describes the fields applied when an entry is signed off.
type Sign struct {
	Label     *int
	CreatedBy *string
	Reason    *string
	Status    *string
	SignedBy  *string
	SignedAt  time.Time
}
