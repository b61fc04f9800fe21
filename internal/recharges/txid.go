package recharge

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	txnPrefix         = "TXN"
	txnSuffixLen      = 5
	txnSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewTransactionID builds a ledger transaction id from the current
// millisecond timestamp and a random base36 suffix. Uniqueness is the
// caller's responsibility; a duplicate insert is surfaced as a conflict,
// never retried with a fresh id.
func NewTransactionID() string {
	return newTransactionIDAt(time.Now())
}

func newTransactionIDAt(now time.Time) string {
	suffix := make([]byte, txnSuffixLen)
	max := big.NewInt(int64(len(txnSuffixAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a timestamp-derived digit.
			suffix[i] = txnSuffixAlphabet[int(now.UnixNano())%len(txnSuffixAlphabet)]
			continue
		}
		suffix[i] = txnSuffixAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s%d%s", txnPrefix, now.UnixMilli(), suffix)
}
