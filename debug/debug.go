package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Encode bool
	Path   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("GFF_DEBUG_PARSE")
	d.Encode = boolEnv("GFF_DEBUG_ENCODE")
	d.Path = boolEnv("GFF_DEBUG_PATH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Path() bool {
	return d.Path
}

// Any reports whether some debug switch is on.
func Any() bool {
	return d.Parse || d.Encode || d.Path
}
