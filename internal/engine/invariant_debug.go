//go:build debug

package engine

const debugInvariants = true
