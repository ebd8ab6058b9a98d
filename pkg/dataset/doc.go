// Package dataset holds the tabular input of a semi-chord chart.
//
// A [Record] is an ordered set of fields whose values are strings or
// numbers ([Value]). A [Table] pairs records with the attribute columns to
// plot and the key field that labels each record. [Datum] is the payload
// attached to rendered shapes and event callbacks.
//
// Field order matters: when no attributes are given they are read from the
// first record in order, and when no key is given the first attribute is
// used as the key.
package dataset
