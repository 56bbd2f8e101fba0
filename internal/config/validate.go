package config

import "errors"

func ValidateForRun(cfg *Config) error {
	var errs []error
	if err := cfg.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Store.Backend == StoreBackendRedis {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := cfg.Gateway.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
