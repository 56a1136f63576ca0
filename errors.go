package urlfam

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrMissingScheme = errors.New("urlfam: missing scheme")
	ErrMissingHost   = errors.New("urlfam: missing host")
)

func (u URL) validate() error {
	var err *multierror.Error
	if u.scheme == "" {
		err = multierror.Append(err, ErrMissingScheme)
	}
	if u.host == "" {
		err = multierror.Append(err, ErrMissingHost)
	}
	return err.ErrorOrNil()
}
