// Package grammar checks message text with an external grammar service
// speaking the LanguageTool /v2/check contract, and narrows the raw issue
// list down to actionable errors.
//
// Like the threat list client, Check never returns remote failures as Go
// errors: the outcome is always a Result with a success flag.
package grammar
