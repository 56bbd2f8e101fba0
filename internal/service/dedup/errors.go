package dedup

import "errors"

var ErrInvalidMarkerData = errors.New("invalid dedup marker data")
