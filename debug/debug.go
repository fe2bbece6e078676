package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokenize bool
	Parse    bool
	Refs     bool
	Encode   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokenize = boolEnv("RSON_DEBUG_TOKENIZE")
	d.Parse = boolEnv("RSON_DEBUG_PARSE")
	d.Refs = boolEnv("RSON_DEBUG_REFS")
	d.Encode = boolEnv("RSON_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokenize() bool {
	return d.Tokenize
}
func Parse() bool {
	return d.Parse
}
func Refs() bool {
	return d.Refs
}
func Encode() bool {
	return d.Encode
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
