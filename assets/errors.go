package assets

import "errors"

var (
	ErrNoPlatformDomain = errors.New("no platform owned domain is configured")
	ErrNotInitialized   = errors.New("certified assets have not been loaded")
	ErrAlreadyLoaded    = errors.New("certified assets are already loaded")
	ErrNoCertificate    = errors.New("no certificate is available for the published digest")
	ErrPublishFailed    = errors.New("publishing the asset digest failed")
	ErrWitnessEncoding  = errors.New("the asset witness could not be encoded")
)

var (
	ErrHeaderMalformed     = errors.New("the certificate header is malformed")
	ErrCertificateRejected = errors.New("the certificate does not vouch for the witness digest")
	ErrPathNotCertified    = errors.New("the witness does not reveal a hash for the path")
	ErrContentMismatch     = errors.New("the content does not match the certified hash")
)
