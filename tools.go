//go:build tools

// Package main tracks tool dependencies invoked through go generate.
package main

import (
	_ "go.uber.org/mock/mockgen"
)
