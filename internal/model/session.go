package model

import "time"

// CurrentSession is the single active identity of the logbook. It survives
// restarts until an explicit logout.
type CurrentSession struct {
	Account   Account   `json:"account"`
	TokenID   string    `json:"token_id"`
	StartedAt time.Time `json:"started_at"`
}
