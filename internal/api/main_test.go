// SPDX-License-Identifier: MIT

package api

import (
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	// Unset all LINTRC vars so ambient shell configuration cannot leak
	// into snapshot assertions.
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "LINTRC_") || strings.HasPrefix(e, "LINTRCD_") {
			kv := strings.SplitN(e, "=", 2)
			if len(kv) > 0 {
				if err := os.Unsetenv(kv[0]); err != nil {
					panic("failed to unset env: " + err.Error())
				}
			}
		}
	}

	os.Exit(m.Run())
}
