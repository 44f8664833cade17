//go:build !minimapdebug

package minimap

const assertionsEnabled = false
