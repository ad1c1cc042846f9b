package ticket

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
	StatusInProgress Status = "in-progress"
	StatusAwaiting   Status = "awaiting"
)

var validStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusClosed:     true,
	StatusInProgress: true,
	StatusAwaiting:   true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

// ParseStatuses accepts repeated values and comma separated lists.
func ParseStatuses(values []string) ([]Status, error) {
	var out []Status
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s := Status(part)
			if !s.IsValid() {
				return nil, fmt.Errorf("invalid ticket status: %s", part)
			}
			out = append(out, s)
		}
	}
	return out, nil
}
