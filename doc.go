// Package tlshgo implements the Trend Micro Locality Sensitive Hash (TLSH), a
// fuzzy-hashing primitive that produces a short, fixed-size fingerprint of a
// byte stream such that fingerprints of similar inputs yield small numeric
// distances. See the tlsh subpackage for the streaming builder, distance
// function and digest codec, and cmd/tlsh for the command-line front end.
package tlshgo
