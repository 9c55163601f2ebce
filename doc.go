// Package capgains computes the capital gains tax owed after each trade of a
// chronological stream of buy and sell operations on a single instrument.
//
// The core functionalities include:
//   - Resolution: a sequential fold over the transactions that tracks the
//     position, the weighted average cost of the shares held and the profit
//     carried from one sale to the next (see CapitalGains and State).
//   - Tax rules: sales with a notional value at or below an exemption
//     threshold (20000.00) owe nothing, losses are carried forward to offset
//     future gains, and taxable profit is charged at a fixed rate (20%)
//     supplied by a RateFunc policy.
//   - Exact arithmetic: every amount is a decimal quantized to cents, rounding
//     half away from zero. Binary floating point is never used for money.
//   - Streams: decoding and encoding of the newline delimited JSON format used
//     by the `cgt` command line tool (see Process), and parallel resolution of
//     independent lists (see ResolveAll).
package capgains
