package memory

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Image loader errors
	ErrImageOrigin = errors.New(f("image origin missing"))
	ErrImageRead   = errors.New(f("image read"))
)
