// SPDX-License-Identifier: EPL-2.0

package analysis

import "errors"

var (
	ErrMetricUnavailable = errors.New("metric unavailable")
	ErrConfigInvalid     = errors.New("invalid analysis configuration")
)
