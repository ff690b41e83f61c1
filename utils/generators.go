package utils

import (
	"math/rand"
	"strings"
)

// GenerateGiftCardCode generates a gift card code in XXXX-XXXX-XXXX form
func GenerateGiftCardCode() string {
	var b strings.Builder
	for i := 0; i < GiftCardLength; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(GiftCardCharset[rand.Intn(len(GiftCardCharset))])
	}
	return b.String()
}
