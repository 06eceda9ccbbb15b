// Package scoring submits validated applicant records to the remote scoring
// endpoint and decodes the returned default probability.
//
// The endpoint contract is a single JSON POST:
//
//	POST /score  {"int_rate": 13.99, "term": 36, ...}
//	200 OK       {"default_probability": 0.342}
//
// Every failure (transport, non-2xx status, malformed body) is reported as a
// *Error that matches ErrScoringFailed. Requests are never retried.
package scoring
