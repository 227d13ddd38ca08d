package env

import (
	"fmt"
	"os"
	"strconv"

	bundleServerEnvErrors "github.com/Motmedel/bundle_server/pkg/env/errors"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
)

func GetEnvWithDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// LookupNonEmpty reports the value of the variable and whether it is set to a non-empty value.
func LookupNonEmpty(name string) (string, bool) {
	value, found := os.LookupEnv(name)
	if !found || value == "" {
		return "", false
	}
	return value, true
}

func LookupInt(name string) (int, bool, error) {
	value, ok := LookupNonEmpty(name)
	if !ok {
		return 0, false, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, true, bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: %q: strconv atoi: %w", bundleServerEnvErrors.ErrMalformed, name, err),
			value,
		)
	}

	return intValue, true, nil
}

func LookupBool(name string) (bool, bool, error) {
	value, ok := LookupNonEmpty(name)
	if !ok {
		return false, false, nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, true, bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: %q: strconv parse bool: %w", bundleServerEnvErrors.ErrMalformed, name, err),
			value,
		)
	}

	return boolValue, true, nil
}
