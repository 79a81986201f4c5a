// Package anchor issues the certificates that make a published asset digest
// trustworthy to remote clients.
//
// A SigningAnchor signs each published digest as a COSE Sign1 message. The
// payload is a CBOR CertifiedState and the protected header carries CWT
// claims naming the issuer, the subject and the confirmation key. The digest
// itself is removed from the payload after signing, so a verifier must
// recompute it from a witness and put it back before the signature will
// check. See Verifier for the complete verification.
package anchor
