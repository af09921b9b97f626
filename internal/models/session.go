package models

import "time"

// ExerciseSession is one mounted widget: its state and when it was last touched.
type ExerciseSession struct {
	ID        string        `json:"id"`
	State     ExerciseState `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
