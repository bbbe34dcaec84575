package io

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Console errors
	ErrKeyboardEOF = errors.New(f("keyboard at end of input"))
)
