// SPDX-License-Identifier: EPL-2.0

package sse

import "errors"

var ErrUnknownEvent = errors.New("unknown event kind")
