// Package models defines the core domain models for SplitBase.
//
// # Models
//
//   - Bill: a tracked shared expense with a total amount and participants
//   - Participant: a person owing a portion of a bill's total
//
// Bills carry two derived fields that the ledger keeps consistent after
// every mutation:
//
//   - Status: pending/partial/settled, recomputed from the participants'
//     paid flags (see DeriveStatus)
//   - Participant.Amount: recomputed by split operations, or set directly
//     for custom splits
//
// # Design Principles
//
// 1. **Single currency**: amounts are USDC-equivalent with two-decimal precision
// 2. **Explicit optionals**: identity metadata (address, fid, avatar) uses
// pointer fields rather than sentinel values
// 3. **Snapshot friendly**: every field carries a JSON tag; timestamps
// serialize as RFC 3339 so snapshots rehydrate losslessly
package models
