package domain

import "time"

// DailyRequestLimit is the number of AI generation requests a user may
// make per UTC calendar day.
const DailyRequestLimit = 1

// User represents a bot user
type User struct {
	UserID          int64      `json:"userId"`
	AIRequestCount  int        `json:"aiRequestCount"`
	AILastRequestAt *time.Time `json:"aiLastRequestAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CanMakeRequest reports whether the user is still under the daily AI
// quota at the given moment. The counter resets when the stored date
// differs from now's UTC date; rollover does not accumulate credit.
func (u *User) CanMakeRequest(now time.Time) bool {
	if u.AILastRequestAt == nil {
		return true
	}
	last := u.AILastRequestAt.UTC()
	today := now.UTC()
	if last.Year() != today.Year() || last.YearDay() != today.YearDay() {
		return true
	}
	return u.AIRequestCount < DailyRequestLimit
}
