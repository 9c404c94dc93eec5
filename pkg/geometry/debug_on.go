//go:build shadingdebug

package geometry

// debugChecks enables index validation in the shading hot path
const debugChecks = true
