// Package cli wires the cobra command line to the resolve use case.
package cli
