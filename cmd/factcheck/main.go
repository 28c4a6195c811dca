// Package main provides the entry point for the factcheck CLI.
//
// factcheck judges whether the statistics published by a website are
// accurate, either on their own or against trusted reference documents.
//
// Usage:
//
//	factcheck check
//	factcheck check post.json -r gov.json
//	factcheck history "Facebook post"
//
// See --help for all available options.
package main

func main() {
	Execute()
}
