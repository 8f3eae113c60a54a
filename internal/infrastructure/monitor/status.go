package monitor

import "time"

type Status struct {
	Backend   bool      `json:"backend"`
	LastCheck time.Time `json:"last_check"`
}
