// Package main provides the entry point for the mailsafe CLI.
//
// mailsafe analyzes email content for phishing indicators: suspicious links,
// threat list matches, phishing phrases and grammar quality.
//
// Usage:
//
//	mailsafe serve
//	mailsafe analyze message.eml
//
// See --help for all available options.
package main

// main is the entry point for mailsafe.
func main() {
	Execute()
}
