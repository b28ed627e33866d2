package payroll

import "errors"

var ErrUnknownBucket = errors.New("unknown deduction bucket")
