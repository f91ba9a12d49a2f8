// Package wire implements the publication protocol transport: protocol
// discovery via the well-known metadata document, and the integer-keyed
// CBOR request/response codec with gzip-compressed bodies used by the
// suggest/bundle/missing/finalize/teams endpoints.
package wire
