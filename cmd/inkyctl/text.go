package main

import "strings"

var escapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`)

// unescape expands the escape sequences a shell passes through literally.
func unescape(s string) string {
	return escapes.Replace(s)
}
