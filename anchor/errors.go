package anchor

import "errors"

var (
	ErrUnsupportedCurve  = errors.New("the signing key curve is not supported")
	ErrCertificateStore  = errors.New("the certificate could not be written to the certificate store")
	ErrUntrustedKey      = errors.New("the certificate is not signed by the trusted key")
	ErrStateRootPresent  = errors.New("the certificate payload must not carry the root")
	ErrCertificateDecode = errors.New("the certificate could not be decoded")
)
