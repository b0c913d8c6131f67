package nice

import "github.com/RWayne93/NICE/dagnn"

// Encoders sends every frame to each of its encoders.
type Encoders []OutputEncoder

func (encs Encoders) Encode(f dagnn.Frame) error {
	var allErrs manyErr
	for _, enc := range encs {
		if err := enc.Encode(f); err != nil {
			allErrs = append(allErrs, err)
		}
	}
	if len(allErrs) > 0 {
		return allErrs
	}
	return nil
}

func (encs Encoders) Flush() error {
	var allErrs manyErr
	for _, enc := range encs {
		if err := enc.Flush(); err != nil {
			allErrs = append(allErrs, err)
		}
	}
	if len(allErrs) > 0 {
		return allErrs
	}
	return nil
}
