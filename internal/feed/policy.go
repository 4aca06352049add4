package feed

import (
	"time"

	"github.com/google/uuid"
)

// Policy holds the incentive and elevation constants.
type Policy struct {
	PostReward              int64
	ComplaintReward         int64
	StoryReward             int64
	VideoReward             int64
	MinRegistrationIDLength int
}

// DefaultPolicy returns the stock reward amounts.
func DefaultPolicy() Policy {
	return Policy{
		PostReward:              5,
		ComplaintReward:         10,
		StoryReward:             50,
		VideoReward:             10,
		MinRegistrationIDLength: 6,
	}
}

// Env supplies the clock, id generator and policy to Reduce.
type Env struct {
	Now    func() time.Time
	NewID  func() string
	Policy Policy
}

// DefaultEnv uses the wall clock and random UUIDs.
func DefaultEnv() Env {
	return Env{Now: time.Now, NewID: uuid.NewString, Policy: DefaultPolicy()}
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) newID(prefix string) string {
	if e.NewID == nil {
		return prefix + uuid.NewString()
	}
	return prefix + e.NewID()
}
