// Package server answers HTTP requests for certified assets.
//
// Every successful response carries the stored headers of the asset and an
// IC-Certificate header a client can check with
// assets.VerifyCertificateHeader.
package server
