// Package app wires application dependencies for the CLI.
//
// It loads the layered YAML configuration, builds the snapshot store, the
// optional mirrors and notifiers, and the feed store from Config, and
// exposes them via the Wire struct for commands to use.
package app
