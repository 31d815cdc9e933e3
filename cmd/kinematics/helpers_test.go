// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"math"
	"os"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func nan() float64 { return math.NaN() }
