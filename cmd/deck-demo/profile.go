package main

import (
	"fmt"

	"github.com/google/uuid"
)

// profile is the record shown on each demo card
type profile struct {
	ID   string
	Name string
	Age  int
}

func (p profile) CardID() string { return p.ID }

func (p profile) Label() string {
	return fmt.Sprintf("%s, %d", p.Name, p.Age)
}

var names = []string{
	"Ada", "Bashō", "Chiara", "Dmitri", "Eun-ji", "Farouk", "Greta", "Hiroshi",
	"Ingrid", "José", "Kwame", "Lucía", "Mei", "Nikolai", "Oluwaseun", "Priya",
}

// newProfiles creates n profiles with fresh ids, numbering names from start
func newProfiles(start, n int) []profile {
	out := make([]profile, n)
	for i := range out {
		k := start + i
		out[i] = profile{
			ID:   uuid.NewString(),
			Name: names[k%len(names)],
			Age:  21 + (k*7)%40,
		}
	}
	return out
}
