package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// generateBatchNo 导入批次号，如 IMP20250101120000123456
func generateBatchNo(now time.Time) string {
	return "IMP" + now.Format("20060102150405") + randNumeric(6)
}

// generateQuoteNo 询价单号
func generateQuoteNo(now time.Time) string {
	return "GQ" + now.Format("20060102150405") + randNumeric(6)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
