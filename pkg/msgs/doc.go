// Package msgs defines messages published about L0 link traffic.
package msgs
