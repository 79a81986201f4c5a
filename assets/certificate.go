package assets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/forestrie/go-certassets/hashtree"
)

// CertificateHeaderName is the response header carrying the certificate and
// the witness.
const CertificateHeaderName = "IC-Certificate"

// CertificateHeader builds the certificate header for path from the current
// anchor certificate and a witness for path.
//
// It fails with ErrNoCertificate until the anchor has accepted a digest. A
// witness that cannot be encoded is a broken invariant and panics.
func (r *Registrar) CertificateHeader(path string) (Header, error) {
	certificate, ok := r.anchor.CurrentCertificate()
	if !ok {
		return Header{}, ErrNoCertificate
	}

	tree, err := hashtree.Encode(r.Witness(path))
	if err != nil {
		panic(fmt.Errorf("%w: %s: %v", ErrWitnessEncoding, path, err))
	}

	return Header{
		Name:  CertificateHeaderName,
		Value: FormatCertificateHeader(certificate, tree),
	}, nil
}

// FormatCertificateHeader produces
//
//	certificate=:<base64(certificate)>:, tree=:<base64(tree)>:
func FormatCertificateHeader(certificate, tree []byte) string {
	return fmt.Sprintf("certificate=:%s:, tree=:%s:",
		base64.StdEncoding.EncodeToString(certificate),
		base64.StdEncoding.EncodeToString(tree))
}

// ParseCertificateHeader is the inverse of FormatCertificateHeader.
func ParseCertificateHeader(value string) ([]byte, []byte, error) {
	fields := map[string][]byte{}
	for _, field := range strings.Split(value, ", ") {
		name, encoded, ok := strings.Cut(field, "=")
		if !ok || len(encoded) < 2 || encoded[0] != ':' || encoded[len(encoded)-1] != ':' {
			return nil, nil, fmt.Errorf("%w: %q", ErrHeaderMalformed, field)
		}
		if _, dup := fields[name]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate field %s", ErrHeaderMalformed, name)
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded[1 : len(encoded)-1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: field %s: %v", ErrHeaderMalformed, name, err)
		}
		fields[name] = decoded
	}

	certificate, ok := fields["certificate"]
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing certificate", ErrHeaderMalformed)
	}
	tree, ok := fields["tree"]
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing tree", ErrHeaderMalformed)
	}
	return certificate, tree, nil
}

// VerifyCertificateHeader is the client side check of a certified response.
//
// It reconstructs the digest from the witness, asks verify whether the
// certificate vouches for that digest, then requires the witness to reveal,
// for path, exactly the hash of body.
func VerifyCertificateHeader(value string, path string, body []byte, verify CertificateVerifier) error {
	certificate, encoded, err := ParseCertificateHeader(value)
	if err != nil {
		return err
	}

	tree, err := hashtree.Decode(encoded)
	if err != nil {
		return err
	}

	if err = verify(certificate, tree.Reconstruct()); err != nil {
		return fmt.Errorf("%w: %w", ErrCertificateRejected, err)
	}

	result := tree.Lookup([]byte(Label), []byte(path))
	certified, ok := result.Value()
	if !ok {
		return fmt.Errorf("%w: %s is %s", ErrPathNotCertified, path, result.Status)
	}

	hash := ContentHash(body)
	if !bytes.Equal(certified, hash[:]) {
		return fmt.Errorf("%w: %s", ErrContentMismatch, path)
	}
	return nil
}
