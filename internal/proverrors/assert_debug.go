//go:build debug

package proverrors

const debugAssertions = true
