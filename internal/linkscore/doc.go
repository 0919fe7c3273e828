// Package linkscore implements fast, offline heuristics for URLs found in a
// message. It never touches the network: every reason is derived from the URL
// string alone, so the result is deterministic and cannot fail.
//
// Three families of signals are reported:
//   - credential-bait tokens such as "login", "verify" or "paypal"
//   - punycode hostnames ("xn--"), often used for homograph lookalikes
//   - top-level domains frequently associated with throwaway phishing hosts
package linkscore
