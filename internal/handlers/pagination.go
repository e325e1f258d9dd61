package handlers

import (
	"fmt"
	"strconv"

	"canteen/internal/wallet"
)

// parseLimitSkip reads limit/skip query values. Range checks beyond
// "is a number" are left to the ledger.
func parseLimitSkip(limitStr, skipStr string) (int64, int64, error) {
	limit := int64(wallet.DefaultPageSize)
	skip := int64(0)

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("limit must be a number")
		}
		limit = l
	}

	if skipStr != "" {
		s, err := strconv.ParseInt(skipStr, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("skip must be a number")
		}
		skip = s
	}

	return limit, skip, nil
}
