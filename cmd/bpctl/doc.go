// Command bpctl decodes, encodes and inspects blueprint strings from a
// terminal, sharing the server's history storage.
//
// Usage:
//
//	bpctl decode 0eNq...            # print the JSON
//	bpctl decode - --format yaml    # read stdin, print YAML
//	bpctl decode --glob 'saves/**/*.txt'
//	bpctl encode blueprint.json
//	bpctl history list
package main
