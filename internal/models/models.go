package models

import "strings"

// User is a roster member. ID is assigned at load time and is the only
// stable key; Name is the lookup and display attribute of the RPC surface.
type User struct {
	ID      int
	Name    string
	Rating  int64
	Balance int64
}

// RosterEntry is one record of the startup roster file.
type RosterEntry struct {
	Name   string `json:"name"`
	Rating int64  `json:"rating"`
}

// Coin is an indivisible unit of value. History is append-only: the first
// entry is always the emission event, every later entry is one transfer hop.
type Coin struct {
	ID      int64
	History []string
}

// HistoryString renders the provenance trail, one hop per line.
func (c *Coin) HistoryString() string {
	return strings.Join(c.History, "\n")
}
