package utils

import (
	"fmt"
	"math"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsNan(A any) bool {
	return anyFloat(A, math.IsNaN)
}

func IsInf(A any) bool {
	return anyFloat(A, func(f float64) bool { return math.IsInf(f, 0) })
}

// IsFinite is true when no value in A is NaN or +/-Inf.
func IsFinite(A any) bool {
	return !IsNan(A) && !IsInf(A)
}

func anyFloat(A any, test func(float64) bool) bool {
	switch v := A.(type) {
	case float64:
		return test(v)
	case []float64:
		for _, f := range v {
			if test(f) {
				return true
			}
		}
	case Matrix:
		return anyFloat(v.DataP, test)
	case []Matrix:
		for _, m := range v {
			if anyFloat(m.DataP, test) {
				return true
			}
		}
	}
	return false
}
