package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Project bool
	Diff    bool
	Patches bool
}

var d *debug

func init() {
	d = &debug{}
	d.Project = boolEnv("STATEPATCH_DEBUG_PROJECT")
	d.Diff = boolEnv("STATEPATCH_DEBUG_DIFF")
	d.Patches = boolEnv("STATEPATCH_DEBUG_PATCHES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Project() bool {
	return d.Project
}
func Diff() bool {
	return d.Diff
}
func Patches() bool {
	return d.Patches
}
