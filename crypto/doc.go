/*
Package crypto provides the hashing primitive underlying the reserve
commitment.

All digests are computed with the tagged-hash construction
SHA-256(tag || tag || input). The construction is deterministic: given the
same tag and input, the digest is byte-identical across processes and runs,
which is what lets a third party independently reproduce the published
root from the same record set and tags.
*/
package crypto
