// Package threatlist queries an external URL reputation service using the
// Google Safe Browsing v4 "threatMatches:find" contract.
//
// The lookup is optional infrastructure: a Client without an API key reports
// success with no matches and never touches the network. Remote failures are
// never returned as Go errors; they are captured in Result so that a broken
// reputation service only removes one signal from an analysis.
package threatlist
