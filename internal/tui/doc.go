// Package tui is the interactive console menu.
//
// Each screen is a small Bubble Tea model run to completion (Menu, Prompt,
// HelpView); App strings them together and calls the organizer between
// screens. Track lists are typed in the comma/hyphen notation and validated
// before anything runs.
package tui
