// Package seeder generates synthetic comparison traffic against a running
// moveboard instance and verifies the resulting tier list.
//
// Outcomes are biased by the catalog's derived move quality so the seeded
// tier list resembles what human judgments would converge to.
package seeder

import "time"

// Config controls a seeding run.
type Config struct {
	BaseURL    string
	BundlePath string
	Category   string
	NumEvents  int
	Workers    int
	Timeout    time.Duration
	Verbose    bool
}

// Stats aggregates the results of a seeding run.
type Stats struct {
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsDuplicate  int
	EventsFailed     int
}
