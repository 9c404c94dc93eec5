//go:build !shadingdebug

package geometry

const debugChecks = false
