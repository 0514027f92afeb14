package main

import "fmt"

func errInvalidMode(value string) error {
	return fmt.Errorf("invalid mode %q (use word or line)", value)
}
