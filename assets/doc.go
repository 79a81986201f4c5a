// Package assets serves content that a client can verify against a single
// published digest.
//
// Every asset is stored as a Record keyed by its request path, and the SHA-256
// of its body is committed under the same path in a certmap.Map. The map root
// is wrapped under the "http_assets" label before it is handed to an Anchor,
// which publishes it and later returns a certificate for it. A response for a
// path carries the IC-Certificate header: the anchor certificate plus a
// witness for that one path.
//
// Registrations are batched. Registrar.Add stages records and commitments,
// Registrar.Finalize publishes the new digest and only then makes the batch
// visible. Service wraps a Registrar with the startup load, the synthesized
// assets and the locking needed to share it between request handlers.
package assets
