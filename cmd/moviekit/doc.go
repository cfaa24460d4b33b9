// Package main hosts the moviekit CLI entrypoint and command graph.
//
// Every subcommand loads and validates the configuration, opens a log
// session, takes the instance lock and builds an organizer over the
// configured movies folder. `moviekit menu` (the default on a terminal)
// drives the same organizer through the interactive menu.
package main
