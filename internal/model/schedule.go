package model

import "time"

// ClassSession is one slot of the static weekly class schedule.
// StartTime and EndTime are zero-padded 24h "HH:MM" strings.
type ClassSession struct {
	ID        string       `yaml:"id" json:"id"`
	Subject   string       `yaml:"subject" json:"subject"`
	DayOfWeek time.Weekday `yaml:"day" json:"dayOfWeek"`
	StartTime string       `yaml:"start" json:"startTime"`
	EndTime   string       `yaml:"end" json:"endTime"`
	Room      string       `yaml:"room,omitempty" json:"room,omitempty"`
}
