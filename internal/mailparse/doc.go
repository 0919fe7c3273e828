// Package mailparse turns stored messages into analysis payloads.
//
// RFC 5322 messages (.eml) are decoded with enmime: the subject header, the
// plain-text body (or enmime's text rendering of the HTML body when no plain
// part exists), and every http(s) link found in HTML anchors and in the text.
// JSON files holding an analysis request body are decoded as-is.
package mailparse
