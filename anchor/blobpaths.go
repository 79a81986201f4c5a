package anchor

import "fmt"

const (
	V1CertAssetsPrefix       = "v1/certassets"
	V1CertificateBlobNameFmt = "%016d.sth"

	// RootTag is the blob index tag holding the hex digest a certificate vouches for.
	RootTag = "root"
)

// CertificatesPrefix is the blob prefix for every certificate of subject
func CertificatesPrefix(subject string) string {
	return fmt.Sprintf("%s/%s/certificates/", V1CertAssetsPrefix, subject)
}

// CertificateBlobPath is the blob path for the certificate with the given
// sequence number. Zero padding keeps list order equal to sequence order.
func CertificateBlobPath(subject string, sequence uint64) string {
	return CertificatesPrefix(subject) + fmt.Sprintf(V1CertificateBlobNameFmt, sequence)
}
