// Command qbe builds and runs query-by-example searches against the backend
// named in its YAML configuration.
//
//	qbe --config qbe.yaml build example --entity widgets --json '{"name":"Foo","count":5}'
//	qbe --config qbe.yaml build pattern --entity widgets foo
//	qbe --config qbe.yaml search example --entity widgets --json '{"name":"Foo"}'
//	qbe --config qbe.yaml search pattern foo
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
