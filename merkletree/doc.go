/*
Package merkletree implements the tagged-hash Merkle tree underlying a
proof-of-reserve attestation.

The tree commits to a fixed, ordered set of user balance records. It is
built exactly once from that record set and is immutable afterwards, which
makes every read operation (root queries, searches, rendering) safe for
unlimited concurrent use with no locking.

Construction pairs nodes level by level, bottom-up. A level with an odd
node count pairs its last node with itself rather than promoting it
unchanged, so every branch hash depends on exactly two (possibly
identical) child hashes and the tagging scheme stays uniform across the
whole tree.

A predicate search returns the matched record together with the traversal
path taken from the root, which serves as the inclusion evidence handed to
an auditor.
*/
package merkletree
